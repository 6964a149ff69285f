package handler_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/reelnotes/internal/handler"
)

func TestFavorites_Flow(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.signup(t, "Alice", "alice@example.com")
	base := "/api/users/" + strconv.FormatInt(alice.User.ID, 10) + "/favorites"

	add := map[string]any{
		"movieId":   603,
		"title":     "The Matrix",
		"posterUrl": "https://image.tmdb.org/t/p/w500/m.jpg",
		"overview":  "",
	}

	var msg messageResponse
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, base, alice.Token, add, &msg))
	assert.Equal(t, "Saved to favorites", msg.Message)

	// Saving twice keeps a single row.
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base, alice.Token, add, &msg))
	assert.Equal(t, "Already saved", msg.Message)

	// String ids are accepted too.
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, base, alice.Token, map[string]any{
		"movieId": "78",
		"title":   "Blade Runner",
	}, nil))

	var favs []handler.FavoriteDTO
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, base, alice.Token, nil, &favs))
	require.Len(t, favs, 2)
	assert.Equal(t, "78", favs[0].MovieID, "newest first")
	assert.Equal(t, "603", favs[1].MovieID)
	require.NotNil(t, favs[1].PosterURL)
	assert.Nil(t, favs[1].Overview, "blank overview is stored as null")

	var check struct {
		Saved bool `json:"saved"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, base+"/603", alice.Token, nil, &check))
	assert.True(t, check.Saved)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, base+"/603", alice.Token, nil, &msg))
	assert.Equal(t, "Removed from favorites", msg.Message)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, base+"/603", alice.Token, nil, &check))
	assert.False(t, check.Saved)
}

func TestFavorites_Validation(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.signup(t, "Alice", "alice@example.com")
	base := "/api/users/" + strconv.FormatInt(alice.User.ID, 10) + "/favorites"

	var msg messageResponse
	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, base, alice.Token, map[string]any{
		"title": "No id",
	}, &msg))
	assert.Contains(t, msg.Errors, "movieId")

	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, base, alice.Token, "{", nil))
}

func TestFavorites_OtherUserForbidden(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.signup(t, "Alice", "alice@example.com")
	bob := env.signup(t, "Bob", "bob@example.com")
	base := "/api/users/" + strconv.FormatInt(alice.User.ID, 10) + "/favorites"

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, base, alice.Token, map[string]any{
		"movieId": 603, "title": "The Matrix",
	}, nil))

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, base, nil},
		{http.MethodPost, base, map[string]any{"movieId": 1, "title": "Sneaky"}},
		{http.MethodGet, base + "/603", nil},
		{http.MethodDelete, base + "/603", nil},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusForbidden, env.do(t, tt.method, tt.path, bob.Token, tt.body, nil))
		})
	}

	// Alice's favorite is untouched.
	var favs []handler.FavoriteDTO
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, base, alice.Token, nil, &favs))
	require.Len(t, favs, 1)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, base, "", nil, nil))
}
