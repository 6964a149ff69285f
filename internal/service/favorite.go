package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/reelnotes/internal/domain"
)

// FavoriteService manages a user's saved movies. Every operation is scoped
// to the caller's own list.
type FavoriteService struct {
	favorites domain.FavoriteRepository
}

func NewFavoriteService(favorites domain.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

type AddFavoriteInput struct {
	MovieID   string `json:"movieId" validate:"required,max=64"`
	Title     string `json:"title" validate:"required,max=500"`
	PosterURL string `json:"posterUrl" validate:"max=2048"`
	Overview  string `json:"overview"`
}

func (s *FavoriteService) List(ctx context.Context, callerID, userID int64) ([]domain.Favorite, error) {
	if callerID != userID {
		return nil, domain.ErrForbidden
	}
	return s.favorites.ListByUser(ctx, userID)
}

// Add saves a movie. It reports false when the movie was already saved, in
// which case the stored row is left as is.
func (s *FavoriteService) Add(ctx context.Context, callerID, userID int64, in AddFavoriteInput) (bool, error) {
	if callerID != userID {
		return false, domain.ErrForbidden
	}

	in.MovieID = strings.TrimSpace(in.MovieID)
	in.Title = strings.TrimSpace(in.Title)
	if err := check(in); err != nil {
		return false, err
	}

	fav := &domain.Favorite{
		UserID:    userID,
		MovieID:   in.MovieID,
		Title:     in.Title,
		PosterURL: optional(in.PosterURL),
		Overview:  optional(in.Overview),
	}
	added, err := s.favorites.Add(ctx, fav)
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return added, nil
}

func (s *FavoriteService) Remove(ctx context.Context, callerID, userID int64, movieID string) error {
	if callerID != userID {
		return domain.ErrForbidden
	}
	return s.favorites.Remove(ctx, userID, movieID)
}

func (s *FavoriteService) IsSaved(ctx context.Context, callerID, userID int64, movieID string) (bool, error) {
	if callerID != userID {
		return false, domain.ErrForbidden
	}
	return s.favorites.Exists(ctx, userID, movieID)
}

// optional maps blank strings to nil.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
