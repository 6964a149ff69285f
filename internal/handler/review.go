package handler

import (
	"net/http"

	"github.com/msomdec/reelnotes/internal/service"
)

// ReviewHandler serves movie reviews.
type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewRequest struct {
	Content string     `json:"content"`
	Rating  flexRating `json:"rating"`
}

func (req reviewRequest) input() service.ReviewInput {
	return service.ReviewInput{Content: req.Content, Rating: req.Rating.value}
}

// HandleList returns a movie's reviews, newest first. Public.
// GET /api/movies/{movieId}/reviews
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByMovie(r.Context(), r.PathValue("movieId"))
	if err != nil {
		writeServiceError(w, r, "list reviews", err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewDTOs(reviews))
}

// HandleCreate posts a review as the caller.
// POST /api/movies/{movieId}/reviews
// Request: {"content":"...","rating":8}
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req reviewRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.reviews.Create(r.Context(), user.ID, r.PathValue("movieId"), req.input())
	if err != nil {
		writeServiceError(w, r, "create review", err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewDTO(review))
}

// HandleUpdate edits the caller's own review. A non-author gets 403 whatever
// the body contains.
// PUT /api/reviews/{id}
func (h *ReviewHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Review not found")
		return
	}

	var req reviewRequest
	if err := readJSON(w, r, &req); err != nil {
		if authErr := h.reviews.Authorize(r.Context(), id, user.ID); authErr != nil {
			writeServiceError(w, r, "authorize review", authErr)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.reviews.Update(r.Context(), id, user.ID, req.input())
	if err != nil {
		writeServiceError(w, r, "update review", err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewDTO(review))
}

// HandleDelete removes the caller's own review.
// DELETE /api/reviews/{id}
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Review not found")
		return
	}

	if err := h.reviews.Delete(r.Context(), id, user.ID); err != nil {
		writeServiceError(w, r, "delete review", err)
		return
	}
	writeMessage(w, http.StatusOK, "Review deleted")
}
