package domain

import (
	"context"
	"time"
)

// Favorite is a user's saved reference to a catalog movie. Title, poster and
// overview are a snapshot taken when the movie was saved.
type Favorite struct {
	UserID    int64
	MovieID   string
	Title     string
	PosterURL *string
	Overview  *string
	CreatedAt time.Time
}

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Favorite, error)
	// Add inserts the favorite unless the (user, movie) pair already exists.
	// It reports whether a new row was written.
	Add(ctx context.Context, fav *Favorite) (bool, error)
	Remove(ctx context.Context, userID int64, movieID string) error
	Exists(ctx context.Context, userID int64, movieID string) (bool, error)
}
