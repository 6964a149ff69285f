package sqlite_test

import (
	"context"
	"testing"

	"github.com/msomdec/reelnotes/internal/domain"
	"github.com/msomdec/reelnotes/internal/repository/sqlite"
)

func strPtr(s string) *string { return &s }

func TestFavoriteRepository_AddAndList(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	ctx := context.Background()

	u := createUser(t, db, "Ada", "ada@example.com")

	added, err := repo.Add(ctx, &domain.Favorite{
		UserID:    u.ID,
		MovieID:   "603",
		Title:     "The Matrix",
		PosterURL: strPtr("/m.jpg"),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Fatal("expected first add to insert")
	}

	if _, err := repo.Add(ctx, &domain.Favorite{UserID: u.ID, MovieID: "27205", Title: "Inception"}); err != nil {
		t.Fatalf("Add second: %v", err)
	}

	favs, err := repo.ListByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favs))
	}
	// Newest first.
	if favs[0].MovieID != "27205" {
		t.Fatalf("expected newest favorite first, got %s", favs[0].MovieID)
	}
	if favs[0].PosterURL != nil || favs[0].Overview != nil {
		t.Fatal("expected absent optional fields to read back as nil")
	}
	if favs[1].PosterURL == nil || *favs[1].PosterURL != "/m.jpg" {
		t.Fatalf("expected poster /m.jpg, got %v", favs[1].PosterURL)
	}
}

func TestFavoriteRepository_AddDuplicateKeepsOriginal(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	ctx := context.Background()

	u := createUser(t, db, "Ada", "ada@example.com")

	if _, err := repo.Add(ctx, &domain.Favorite{UserID: u.ID, MovieID: "603", Title: "The Matrix"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	added, err := repo.Add(ctx, &domain.Favorite{UserID: u.ID, MovieID: "603", Title: "Renamed"})
	if err != nil {
		t.Fatalf("Add duplicate: %v", err)
	}
	if added {
		t.Fatal("expected duplicate add to be a no-op")
	}

	favs, err := repo.ListByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(favs) != 1 || favs[0].Title != "The Matrix" {
		t.Fatalf("expected the original row to survive, got %+v", favs)
	}
}

func TestFavoriteRepository_RemoveAndExists(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	ctx := context.Background()

	u := createUser(t, db, "Ada", "ada@example.com")
	if _, err := repo.Add(ctx, &domain.Favorite{UserID: u.ID, MovieID: "603", Title: "The Matrix"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ok, err := repo.Exists(ctx, u.ID, "603")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Fatal("expected favorite to exist")
	}

	if err := repo.Remove(ctx, u.ID, "603"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	// Removing again is not an error.
	if err := repo.Remove(ctx, u.ID, "603"); err != nil {
		t.Fatalf("Remove again: %v", err)
	}

	ok, err = repo.Exists(ctx, u.ID, "603")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("expected favorite to be gone")
	}
}

func TestFavoriteRepository_ListIsPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	ctx := context.Background()

	a := createUser(t, db, "A", "a@example.com")
	b := createUser(t, db, "B", "b@example.com")
	if _, err := repo.Add(ctx, &domain.Favorite{UserID: a.ID, MovieID: "1", Title: "One"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	favs, err := repo.ListByUser(ctx, b.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(favs) != 0 {
		t.Fatalf("expected no favorites for b, got %d", len(favs))
	}
}
