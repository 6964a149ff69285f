package handler

import (
	"net/http"

	"github.com/msomdec/reelnotes/internal/service"
)

// FavoriteHandler serves a user's own favorites list.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// ownerID resolves the path user and rejects anyone but the caller.
func ownerID(w http.ResponseWriter, r *http.Request) (callerID, userID int64, ok bool) {
	caller := UserFromContext(r.Context())
	id, valid := pathID(r, "id")
	if !valid || id != caller.ID {
		writeError(w, http.StatusForbidden, "Forbidden")
		return 0, 0, false
	}
	return caller.ID, id, true
}

// HandleList returns the caller's favorites, newest first.
// GET /api/users/{id}/favorites
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	callerID, userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	favs, err := h.favorites.List(r.Context(), callerID, userID)
	if err != nil {
		writeServiceError(w, r, "list favorites", err)
		return
	}
	writeJSON(w, http.StatusOK, toFavoriteDTOs(favs))
}

// HandleAdd saves a movie. Saving the same movie again is not an error.
// POST /api/users/{id}/favorites
// Request: {"movieId":603,"title":"...","posterUrl":"...","overview":"..."}
func (h *FavoriteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	callerID, userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req struct {
		MovieID   flexString `json:"movieId"`
		Title     string     `json:"title"`
		PosterURL string     `json:"posterUrl"`
		Overview  string     `json:"overview"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	added, err := h.favorites.Add(r.Context(), callerID, userID, service.AddFavoriteInput{
		MovieID:   string(req.MovieID),
		Title:     req.Title,
		PosterURL: req.PosterURL,
		Overview:  req.Overview,
	})
	if err != nil {
		writeServiceError(w, r, "add favorite", err)
		return
	}
	if !added {
		writeMessage(w, http.StatusOK, "Already saved")
		return
	}
	writeMessage(w, http.StatusCreated, "Saved to favorites")
}

// HandleCheck reports whether a movie is saved.
// GET /api/users/{id}/favorites/{movieId}
func (h *FavoriteHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	callerID, userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	saved, err := h.favorites.IsSaved(r.Context(), callerID, userID, r.PathValue("movieId"))
	if err != nil {
		writeServiceError(w, r, "check favorite", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// HandleRemove unsaves a movie. Removing a movie that is not saved succeeds.
// DELETE /api/users/{id}/favorites/{movieId}
func (h *FavoriteHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	callerID, userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.favorites.Remove(r.Context(), callerID, userID, r.PathValue("movieId")); err != nil {
		writeServiceError(w, r, "remove favorite", err)
		return
	}
	writeMessage(w, http.StatusOK, "Removed from favorites")
}
