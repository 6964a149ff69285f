package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/msomdec/reelnotes/internal/domain"
	"github.com/msomdec/reelnotes/internal/validate"
)

// ReviewService manages movie reviews. Only the author may edit or delete a
// review.
type ReviewService struct {
	reviews domain.ReviewRepository
}

func NewReviewService(reviews domain.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// ReviewInput is the editable part of a review. Rating is nil when omitted;
// a non-integral or NaN value is rejected.
type ReviewInput struct {
	Content string   `json:"content" validate:"required,max=2000"`
	Rating  *float64 `json:"rating" validate:"omitempty,min=1,max=10"`
}

func (in *ReviewInput) normalize() (*int, error) {
	in.Content = strings.TrimSpace(in.Content)
	fields := validate.Map(*in)
	// NaN slips past min and max, so integrality is checked separately and
	// its message wins.
	if r := in.Rating; r != nil && (math.IsNaN(*r) || *r != math.Trunc(*r)) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["rating"] = fmt.Sprintf("must be an integer between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	if in.Rating == nil {
		return nil, nil
	}
	n := int(*in.Rating)
	return &n, nil
}

// ListByMovie returns a movie's reviews, newest first.
func (s *ReviewService) ListByMovie(ctx context.Context, movieID string) ([]domain.Review, error) {
	return s.reviews.ListByMovie(ctx, movieID)
}

func (s *ReviewService) Create(ctx context.Context, userID int64, movieID string, in ReviewInput) (*domain.Review, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, invalid("movieId", "is required")
	}
	rating, err := in.normalize()
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:  userID,
		MovieID: movieID,
		Content: in.Content,
		Rating:  rating,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return s.reviews.GetByID(ctx, review.ID)
}

// Authorize reports whether userID may modify the review: domain.ErrNotFound
// when it does not exist, domain.ErrForbidden when someone else wrote it.
func (s *ReviewService) Authorize(ctx context.Context, reviewID, userID int64) error {
	_, err := s.owned(ctx, reviewID, userID)
	return err
}

func (s *ReviewService) owned(ctx context.Context, reviewID, userID int64) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return review, nil
}

// Update replaces content and rating. Ownership is checked before the input,
// so a non-author is refused whatever the payload.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID int64, in ReviewInput) (*domain.Review, error) {
	review, err := s.owned(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}
	rating, err := in.normalize()
	if err != nil {
		return nil, err
	}

	review.Content = in.Content
	review.Rating = rating
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, reviewID, userID int64) error {
	if _, err := s.owned(ctx, reviewID, userID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, reviewID)
}
