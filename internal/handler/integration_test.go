package handler_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
)

func TestIntegration_SignupLoginMeLogout(t *testing.T) {
	env := newTestEnv(t, nil)

	// 1. Sign up.
	created := env.signup(t, "Integration User", "integ@example.com")
	if created.Message != "User created" {
		t.Fatalf("signup: unexpected message %q", created.Message)
	}
	if created.Token == "" {
		t.Fatal("signup: expected a token")
	}
	if created.User.Email != "integ@example.com" || created.User.ID == 0 {
		t.Fatalf("signup: unexpected user %+v", created.User)
	}

	// 2. Log in by email.
	var login authResponse
	status := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "INTEG@example.com",
		"password": "password123",
	}, &login)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	if login.User.ID != created.User.ID || login.Token == "" {
		t.Fatalf("login: unexpected response %+v", login)
	}

	// 3. Log in by name.
	status = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"emailOrUsername": "integration user",
		"password":        "password123",
	}, &login)
	if status != http.StatusOK {
		t.Fatalf("login by name: expected 200, got %d", status)
	}

	// 4. Who am I.
	var me struct {
		User struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	status = env.do(t, http.MethodGet, "/api/auth/me", login.Token, nil, &me)
	if status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}
	if me.User.ID != created.User.ID || me.User.Name != "Integration User" {
		t.Fatalf("me: unexpected user %+v", me.User)
	}

	// 5. Logout is an acknowledgement only.
	var msg messageResponse
	status = env.do(t, http.MethodGet, "/api/auth/logout", "", nil, &msg)
	if status != http.StatusOK || msg.Message != "Logged out" {
		t.Fatalf("logout: got %d %q", status, msg.Message)
	}

	// 6. No token, no me.
	status = env.do(t, http.MethodGet, "/api/auth/me", "", nil, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", status)
	}
}

func TestIntegration_SignupValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	var msg messageResponse
	status := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "",
		"email":    "not-an-email",
		"password": "123",
	}, &msg)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	for _, field := range []string{"name", "email", "password"} {
		if msg.Errors[field] == "" {
			t.Errorf("expected an error for %q, got %v", field, msg.Errors)
		}
	}

	// bcrypt limits bytes, so 72 two-byte runes are too long.
	status = env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Multi",
		"email":    "multi@example.com",
		"password": strings.Repeat("é", 72),
	}, &msg)
	if status != http.StatusBadRequest {
		t.Fatalf("multibyte password: expected 400, got %d", status)
	}
	if msg.Errors["password"] != "must be at most 72 bytes" {
		t.Fatalf("multibyte password: unexpected errors %v", msg.Errors)
	}

	status = env.do(t, http.MethodPost, "/api/auth/signup", "", "{not json", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", status)
	}
}

func TestIntegration_SignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "First", "dup@example.com")

	var msg messageResponse
	status := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Second",
		"email":    "Dup@Example.com",
		"password": "password123",
	}, &msg)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if msg.Message != "Email already in use" {
		t.Fatalf("unexpected message %q", msg.Message)
	}

	// Only the first account can log in.
	status = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"emailOrUsername": "Second",
		"password":        "password123",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("login as rejected signup: expected 401, got %d", status)
	}
}

func TestIntegration_LoginFailures(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "Sam", "sam1@example.com")
	env.signup(t, "Sam", "sam2@example.com")

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{"wrong password", map[string]string{"email": "sam1@example.com", "password": "wrongpass"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "nobody@example.com", "password": "password123"}, http.StatusUnauthorized},
		{"unknown name", map[string]string{"emailOrUsername": "Nobody", "password": "password123"}, http.StatusUnauthorized},
		{"ambiguous name", map[string]string{"emailOrUsername": "sam", "password": "password123"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg messageResponse
			status := env.do(t, http.MethodPost, "/api/auth/login", "", tt.body, &msg)
			if status != tt.wantStatus {
				t.Fatalf("expected %d, got %d (%q)", tt.wantStatus, status, msg.Message)
			}
		})
	}
}

func TestIntegration_LoginRateLimited(t *testing.T) {
	limiter := newLimiter(t, 3)
	env := newTestEnv(t, limiter)

	body := map[string]string{"email": "nobody@example.com", "password": "password123"}
	for i := range 3 {
		if status := env.do(t, http.MethodPost, "/api/auth/login", "", body, nil); status != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, status)
		}
	}
	if status := env.do(t, http.MethodPost, "/api/auth/login", "", body, nil); status != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", status)
	}
}

func TestIntegration_UserProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.signup(t, "Alice", "alice@example.com")
	bob := env.signup(t, "Bob", "bob@example.com")
	alicePath := "/api/users/" + strconv.FormatInt(alice.User.ID, 10)

	// Anyone signed in can read a profile.
	var profile struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if status := env.do(t, http.MethodGet, alicePath, bob.Token, nil, &profile); status != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", status)
	}
	if profile.Name != "Alice" || profile.Password != "" {
		t.Fatalf("get: unexpected profile %+v", profile)
	}
	if status := env.do(t, http.MethodGet, "/api/users/999999", bob.Token, nil, nil); status != http.StatusNotFound {
		t.Fatalf("get unknown: expected 404, got %d", status)
	}

	// Only the owner can edit.
	update := map[string]string{"name": "Alice B", "email": "aliceb@example.com"}
	if status := env.do(t, http.MethodPut, alicePath, bob.Token, update, nil); status != http.StatusForbidden {
		t.Fatalf("foreign update: expected 403, got %d", status)
	}

	var updated authResponse
	if status := env.do(t, http.MethodPut, alicePath, alice.Token, update, &updated); status != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", status)
	}
	if updated.Message != "Profile updated" || updated.User.Email != "aliceb@example.com" {
		t.Fatalf("update: unexpected response %+v", updated)
	}

	// Taking someone else's email is a conflict.
	taken := map[string]string{"name": "Alice", "email": "BOB@example.com"}
	if status := env.do(t, http.MethodPut, alicePath, alice.Token, taken, nil); status != http.StatusConflict {
		t.Fatalf("update to taken email: expected 409, got %d", status)
	}
}

func TestIntegration_ChangePassword(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.signup(t, "Alice", "alice@example.com")
	bob := env.signup(t, "Bob", "bob@example.com")
	path := "/api/users/" + strconv.FormatInt(alice.User.ID, 10) + "/password"

	body := map[string]string{"currentPassword": "password123", "newPassword": "newpassword456"}
	if status := env.do(t, http.MethodPut, path, bob.Token, body, nil); status != http.StatusForbidden {
		t.Fatalf("foreign change: expected 403, got %d", status)
	}

	var msg messageResponse
	wrong := map[string]string{"currentPassword": "nope-nope", "newPassword": "newpassword456"}
	if status := env.do(t, http.MethodPut, path, alice.Token, wrong, &msg); status != http.StatusUnauthorized {
		t.Fatalf("wrong current: expected 401, got %d", status)
	}
	if msg.Message != "Current password is incorrect" {
		t.Fatalf("wrong current: unexpected message %q", msg.Message)
	}

	short := map[string]string{"currentPassword": "password123", "newPassword": "123"}
	if status := env.do(t, http.MethodPut, path, alice.Token, short, nil); status != http.StatusBadRequest {
		t.Fatalf("short new password: expected 400, got %d", status)
	}

	wide := map[string]string{"currentPassword": "password123", "newPassword": strings.Repeat("é", 50)}
	if status := env.do(t, http.MethodPut, path, alice.Token, wide, nil); status != http.StatusBadRequest {
		t.Fatalf("100 byte new password: expected 400, got %d", status)
	}

	if status := env.do(t, http.MethodPut, path, alice.Token, body, &msg); status != http.StatusOK {
		t.Fatalf("change: expected 200, got %d", status)
	}

	login := func(password string) int {
		return env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": password,
		}, nil)
	}
	if status := login("password123"); status != http.StatusUnauthorized {
		t.Fatalf("old password: expected 401, got %d", status)
	}
	if status := login("newpassword456"); status != http.StatusOK {
		t.Fatalf("new password: expected 200, got %d", status)
	}
}

func TestIntegration_DeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.signup(t, "Alice", "alice@example.com")
	bob := env.signup(t, "Bob", "bob@example.com")
	alicePath := "/api/users/" + strconv.FormatInt(alice.User.ID, 10)

	if status := env.do(t, http.MethodPost, alicePath+"/favorites", alice.Token, map[string]any{
		"movieId": 603, "title": "The Matrix",
	}, nil); status != http.StatusCreated {
		t.Fatalf("add favorite: expected 201, got %d", status)
	}
	if status := env.do(t, http.MethodPost, "/api/movies/603/reviews", alice.Token, map[string]any{
		"content": "Still holds up.", "rating": 9,
	}, nil); status != http.StatusCreated {
		t.Fatalf("create review: expected 201, got %d", status)
	}

	if status := env.do(t, http.MethodDelete, alicePath, bob.Token, nil, nil); status != http.StatusForbidden {
		t.Fatalf("foreign delete: expected 403, got %d", status)
	}

	var msg messageResponse
	if status := env.do(t, http.MethodDelete, alicePath, alice.Token, nil, &msg); status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	if msg.Message != "Account deleted" {
		t.Fatalf("delete: unexpected message %q", msg.Message)
	}

	// The old token no longer authenticates.
	if status := env.do(t, http.MethodGet, "/api/auth/me", alice.Token, nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("me after delete: expected 401, got %d", status)
	}

	// Reviews went with the account.
	var reviews []map[string]any
	if status := env.do(t, http.MethodGet, "/api/movies/603/reviews", "", nil, &reviews); status != http.StatusOK {
		t.Fatalf("list reviews: expected 200, got %d", status)
	}
	if len(reviews) != 0 {
		t.Fatalf("expected reviews to be removed, got %d", len(reviews))
	}

	var count int
	if err := env.db.SqlDB.Get(&count, "SELECT COUNT(*) FROM favorites"); err != nil {
		t.Fatalf("count favorites: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected favorites to be removed, got %d", count)
	}
}

func TestIntegration_ReviewFlowAcrossUsers(t *testing.T) {
	env := newTestEnv(t, nil)

	var a authResponse
	status := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "A", "email": "a@x.com", "password": "secret1",
	}, &a)
	if status != http.StatusCreated || a.User.ID == 0 {
		t.Fatalf("signup: got %d, user %+v", status, a.User)
	}

	var login authResponse
	status = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	}, &login)
	if status != http.StatusOK || login.User.ID != a.User.ID {
		t.Fatalf("login: got %d, user %+v", status, login.User)
	}

	status = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "secret2",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", status)
	}

	var review struct {
		ID      int64  `json:"id"`
		Content string `json:"content"`
		Rating  *int   `json:"rating"`
	}
	status = env.do(t, http.MethodPost, "/api/movies/42/reviews", login.Token, map[string]any{
		"content": "great", "rating": 9,
	}, &review)
	if status != http.StatusCreated {
		t.Fatalf("create review: expected 201, got %d", status)
	}
	if review.Content != "great" || review.Rating == nil || *review.Rating != 9 {
		t.Fatalf("create review: unexpected echo %+v", review)
	}

	other := env.signup(t, "B", "b@x.com")
	status = env.do(t, http.MethodDelete, "/api/reviews/"+strconv.FormatInt(review.ID, 10), other.Token, nil, nil)
	if status != http.StatusForbidden {
		t.Fatalf("foreign delete: expected 403, got %d", status)
	}
}
