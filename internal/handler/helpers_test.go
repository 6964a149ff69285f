package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/reelnotes/internal/handler"
	"github.com/msomdec/reelnotes/internal/repository/sqlite"
	"github.com/msomdec/reelnotes/internal/service"
	"github.com/msomdec/reelnotes/internal/tmdb"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testEnv struct {
	srv  *httptest.Server
	auth *service.AuthService
	db   *sqlite.DB
}

// newFakeTMDB serves a tiny catalog: 603 exists, 500 fails upstream and
// everything else is unknown.
func newFakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /movie/popular", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"page":1,"total_pages":1,"total_results":1,"results":[{"id":603,"title":"The Matrix","poster_path":"/m.jpg","release_date":"1999-03-31"}]}`)
	})
	mux.HandleFunc("GET /search/movie", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("query") != "matrix" {
			io.WriteString(w, `{"page":1,"total_pages":0,"total_results":0,"results":[]}`)
			return
		}
		io.WriteString(w, `{"page":1,"total_pages":1,"total_results":1,"results":[{"id":603,"title":"The Matrix"}]}`)
	})
	mux.HandleFunc("GET /movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "603":
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"id":603,"title":"The Matrix","overview":"A hacker learns the truth.","tagline":"Welcome to the Real World.","runtime":136,"release_date":"1999-03-31"}`)
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"status_code":34}`)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewAuthService(db.Users(), testJWTSecret, 4, time.Hour), db
}

// newTestEnv wires the full route table against a temp database and a fake
// catalog. limiter may be nil.
func newTestEnv(t *testing.T, limiter *service.TokenBucket) *testEnv {
	t.Helper()
	auth, db := newTestAuthService(t)
	catalog := tmdb.New("test-key", "", newFakeTMDB(t).URL, 0)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:        auth,
		Users:       service.NewUserService(db.Users()),
		Favorites:   service.NewFavoriteService(db.Favorites()),
		Reviews:     service.NewReviewService(db.Reviews()),
		Catalog:     service.NewCatalogService(catalog),
		AuthLimiter: limiter,
		DB:          db.SqlDB,
	})

	srv := httptest.NewServer(handler.Metrics(handler.Recover(mux)))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, auth: auth, db: db}
}

// do sends a JSON request and decodes the JSON response into out, if given.
func (e *testEnv) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

type authResponse struct {
	Message string          `json:"message"`
	User    handler.UserDTO `json:"user"`
	Token   string          `json:"token"`
}

type messageResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func (e *testEnv) signup(t *testing.T, name, email string) authResponse {
	t.Helper()
	var out authResponse
	status := e.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	}, &out)
	if status != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d", email, status)
	}
	return out
}

func newLimiter(t *testing.T, burst float64) *service.TokenBucket {
	t.Helper()
	limiter := service.NewTokenBucket(0.001, burst)
	t.Cleanup(limiter.Stop)
	return limiter
}
