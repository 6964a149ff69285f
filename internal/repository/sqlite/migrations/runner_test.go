package migrations_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/msomdec/reelnotes/internal/repository/sqlite/migrations"
)

func openMemory(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Each pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	for _, table := range []string{"users", "favorites", "reviews"} {
		var n int
		err := db.GetContext(ctx, &n,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		if err != nil {
			t.Fatalf("lookup table %s: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		"Test User", "test@example.com", "hash123",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second run (idempotent): %v", err)
	}

	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM schema_migrations"); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 migration records, got %d", count)
	}
}

func TestRatingCheckConstraint(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash) VALUES ('A', 'a@x.com', 'h')"); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO reviews (user_id, movie_id, content, rating) VALUES (1, '42', 'meh', 11)")
	if err == nil {
		t.Fatal("expected CHECK constraint to reject rating 11")
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO reviews (user_id, movie_id, content, rating) VALUES (1, '42', 'ok', NULL)")
	if err != nil {
		t.Fatalf("NULL rating should be accepted: %v", err)
	}
}
