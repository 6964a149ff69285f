package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/reelnotes/internal/service"
)

// MovieHandler proxies read-only catalog lookups so clients need no TMDB key.
type MovieHandler struct {
	catalog *service.CatalogService
}

func NewMovieHandler(catalog *service.CatalogService) *MovieHandler {
	return &MovieHandler{catalog: catalog}
}

func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// HandleSearch searches the catalog.
// GET /api/movies/search?q=&page=
func (h *MovieHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"), queryPage(r))
	if err != nil {
		writeServiceError(w, r, "search movies", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandlePopular lists popular movies.
// GET /api/movies/popular?page=
func (h *MovieHandler) HandlePopular(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.Popular(r.Context(), queryPage(r))
	if err != nil {
		writeServiceError(w, r, "popular movies", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleGet returns one movie's details.
// GET /api/movies/{movieId}
func (h *MovieHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.Movie(r.Context(), r.PathValue("movieId"))
	if err != nil {
		writeServiceError(w, r, "get movie", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
