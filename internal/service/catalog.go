package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/reelnotes/internal/domain"
	"github.com/msomdec/reelnotes/internal/tmdb"
)

// MovieSource is the subset of the TMDB client the catalog needs.
type MovieSource interface {
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.MoviePage, error)
	PopularMovies(ctx context.Context, page int) (*tmdb.MoviePage, error)
	GetMovie(ctx context.Context, id string) (*tmdb.Movie, error)
}

// CatalogService fronts the external movie catalog and translates its
// failures into domain errors.
type CatalogService struct {
	source MovieSource
}

func NewCatalogService(source MovieSource) *CatalogService {
	return &CatalogService{source: source}
}

func (s *CatalogService) Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("q", "is required")
	}
	res, err := s.source.SearchMovies(ctx, query, clampPage(page))
	if err != nil {
		return nil, catalogError(ctx, "search", err)
	}
	return res, nil
}

func (s *CatalogService) Popular(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	res, err := s.source.PopularMovies(ctx, clampPage(page))
	if err != nil {
		return nil, catalogError(ctx, "popular", err)
	}
	return res, nil
}

func (s *CatalogService) Movie(ctx context.Context, id string) (*tmdb.Movie, error) {
	res, err := s.source.GetMovie(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, catalogError(ctx, "movie", err)
	}
	return res, nil
}

// TMDB serves at most 500 pages.
func clampPage(page int) int {
	return min(max(page, 1), 500)
}

func catalogError(ctx context.Context, op string, err error) error {
	if errors.Is(err, tmdb.ErrNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	slog.WarnContext(ctx, "catalog request failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", domain.ErrUpstream, op, err)
}
