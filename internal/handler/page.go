package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/reelnotes/internal/domain"
	"github.com/msomdec/reelnotes/internal/service"
	"github.com/msomdec/reelnotes/internal/view"
)

// PageHandler renders the public HTML views.
type PageHandler struct {
	catalog *service.CatalogService
	reviews *service.ReviewService
}

func NewPageHandler(catalog *service.CatalogService, reviews *service.ReviewService) *PageHandler {
	return &PageHandler{catalog: catalog, reviews: reviews}
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "render page", "error", err, "path", r.URL.Path)
	}
}

func renderPageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		renderPage(w, r, http.StatusNotFound, view.ErrorPage(http.StatusNotFound, "We couldn't find that movie."))
	case errors.Is(err, domain.ErrUpstream):
		renderPage(w, r, http.StatusBadGateway, view.ErrorPage(http.StatusBadGateway, "The movie catalog is unavailable right now."))
	default:
		slog.ErrorContext(r.Context(), "page", "error", err, "path", r.URL.Path)
		renderPage(w, r, http.StatusInternalServerError, view.ErrorPage(http.StatusInternalServerError, "Something went wrong."))
	}
}

// HandleHome renders the popular movies page.
// GET /{$}
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Popular(r.Context(), queryPage(r))
	if err != nil {
		renderPageError(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, view.HomePage(page))
}

// HandleSearch renders search results.
// GET /search?q=
func (h *PageHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		renderPage(w, r, http.StatusOK, view.SearchPage("", nil))
		return
	}

	page, err := h.catalog.Search(r.Context(), q, queryPage(r))
	if err != nil {
		renderPageError(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, view.SearchPage(q, page))
}

// HandleMovie renders a movie with its reviews.
// GET /movies/{movieId}
func (h *PageHandler) HandleMovie(w http.ResponseWriter, r *http.Request) {
	movieID := r.PathValue("movieId")
	movie, err := h.catalog.Movie(r.Context(), movieID)
	if err != nil {
		renderPageError(w, r, err)
		return
	}

	reviews, err := h.reviews.ListByMovie(r.Context(), movieID)
	if err != nil {
		renderPageError(w, r, err)
		return
	}
	renderPage(w, r, http.StatusOK, view.MoviePage(movie, reviews))
}

// HandleReviewsFragment re-renders the review list via SSE.
// GET /movies/{movieId}/reviews/fragment
func (h *PageHandler) HandleReviewsFragment(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByMovie(r.Context(), r.PathValue("movieId"))
	if err != nil {
		slog.ErrorContext(r.Context(), "list reviews for fragment", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.ReviewsFragment(reviews),
		datastar.WithSelectorID(view.ReviewsID),
	); err != nil {
		slog.ErrorContext(r.Context(), "patch reviews fragment", "error", err)
	}
}
