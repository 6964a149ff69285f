package domain

import (
	"context"
	"time"
)

const (
	MinRating = 1
	MaxRating = 10
)

// Review is user-authored text with an optional 1-10 rating attached to a
// catalog movie. Author is the reviewer's display name, filled on reads.
type Review struct {
	ID        int64
	UserID    int64
	MovieID   string
	Author    string
	Content   string
	Rating    *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id int64) (*Review, error)
	ListByMovie(ctx context.Context, movieID string) ([]Review, error)
	// Update writes content and rating only; the author never changes.
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id int64) error
}
