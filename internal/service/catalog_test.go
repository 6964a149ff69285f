package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/reelnotes/internal/domain"
	"github.com/msomdec/reelnotes/internal/service"
	"github.com/msomdec/reelnotes/internal/tmdb"
)

type fakeSource struct {
	err      error
	lastPage int
}

func (f *fakeSource) SearchMovies(_ context.Context, query string, page int) (*tmdb.MoviePage, error) {
	f.lastPage = page
	if f.err != nil {
		return nil, f.err
	}
	return &tmdb.MoviePage{Page: page, Results: []tmdb.Movie{{ID: 603, Title: query}}}, nil
}

func (f *fakeSource) PopularMovies(_ context.Context, page int) (*tmdb.MoviePage, error) {
	f.lastPage = page
	if f.err != nil {
		return nil, f.err
	}
	return &tmdb.MoviePage{Page: page}, nil
}

func (f *fakeSource) GetMovie(_ context.Context, id string) (*tmdb.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tmdb.Movie{ID: 603, Title: "The Matrix"}, nil
}

func TestCatalogService_Search(t *testing.T) {
	src := &fakeSource{}
	catalog := service.NewCatalogService(src)

	page, err := catalog.Search(context.Background(), " matrix ", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if src.lastPage != 1 {
		t.Fatalf("expected page to be clamped to 1, got %d", src.lastPage)
	}
	if page.Results[0].Title != "matrix" {
		t.Fatalf("expected trimmed query, got %q", page.Results[0].Title)
	}

	if _, err := catalog.Search(context.Background(), "   ", 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty query, got %v", err)
	}
}

func TestCatalogService_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	notFound := service.NewCatalogService(&fakeSource{err: tmdb.ErrNotFound})
	if _, err := notFound.Movie(ctx, "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	down := service.NewCatalogService(&fakeSource{err: &tmdb.StatusError{Code: 503}})
	if _, err := down.Popular(ctx, 1); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}

	unconfigured := service.NewCatalogService(&fakeSource{err: tmdb.ErrNotConfigured})
	if _, err := unconfigured.Search(ctx, "x", 1); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
