package handler

import (
	"net/http"

	"github.com/msomdec/reelnotes/internal/service"
)

// Services bundles what the routes need.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Favorites *service.FavoriteService
	Reviews   *service.ReviewService
	Catalog   *service.CatalogService
	// AuthLimiter throttles signup and login per client IP. Nil disables it.
	AuthLimiter *service.TokenBucket
	DB          Pinger
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, s Services) {
	authH := NewAuthHandler(s.Auth)
	userH := NewUserHandler(s.Users, s.Auth)
	favH := NewFavoriteHandler(s.Favorites)
	reviewH := NewReviewHandler(s.Reviews)
	movieH := NewMovieHandler(s.Catalog)
	pageH := NewPageHandler(s.Catalog, s.Reviews)

	requireAuth := func(h http.HandlerFunc) http.Handler { return RequireAuth(s.Auth, h) }
	limited := func(h http.HandlerFunc) http.Handler {
		if s.AuthLimiter == nil {
			return h
		}
		return RateLimit(s.AuthLimiter, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz(s.DB))
	mux.Handle("GET /metrics", MetricsHandler())

	// Auth
	mux.Handle("POST /api/auth/signup", limited(authH.HandleSignup))
	mux.Handle("POST /api/auth/login", limited(authH.HandleLogin))
	mux.Handle("GET /api/auth/me", requireAuth(authH.HandleMe))
	mux.HandleFunc("GET /api/auth/logout", authH.HandleLogout)

	// Users
	mux.Handle("GET /api/users/{id}", requireAuth(userH.HandleGet))
	mux.Handle("PUT /api/users/{id}", requireAuth(userH.HandleUpdate))
	mux.Handle("DELETE /api/users/{id}", requireAuth(userH.HandleDelete))
	mux.Handle("PUT /api/users/{id}/password", requireAuth(userH.HandleChangePassword))

	// Favorites
	mux.Handle("GET /api/users/{id}/favorites", requireAuth(favH.HandleList))
	mux.Handle("POST /api/users/{id}/favorites", requireAuth(favH.HandleAdd))
	mux.Handle("GET /api/users/{id}/favorites/{movieId}", requireAuth(favH.HandleCheck))
	mux.Handle("DELETE /api/users/{id}/favorites/{movieId}", requireAuth(favH.HandleRemove))

	// Reviews
	mux.HandleFunc("GET /api/movies/{movieId}/reviews", reviewH.HandleList)
	mux.Handle("POST /api/movies/{movieId}/reviews", requireAuth(reviewH.HandleCreate))
	mux.Handle("PUT /api/reviews/{id}", requireAuth(reviewH.HandleUpdate))
	mux.Handle("DELETE /api/reviews/{id}", requireAuth(reviewH.HandleDelete))

	// Catalog proxy
	mux.HandleFunc("GET /api/movies/search", movieH.HandleSearch)
	mux.HandleFunc("GET /api/movies/popular", movieH.HandlePopular)
	mux.HandleFunc("GET /api/movies/{movieId}", movieH.HandleGet)

	// Pages
	mux.HandleFunc("GET /{$}", pageH.HandleHome)
	mux.HandleFunc("GET /search", pageH.HandleSearch)
	mux.HandleFunc("GET /movies/{movieId}", pageH.HandleMovie)
	mux.HandleFunc("GET /movies/{movieId}/reviews/fragment", pageH.HandleReviewsFragment)
}
