package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/reelnotes/internal/domain"
	"github.com/msomdec/reelnotes/internal/repository/sqlite"
	"github.com/msomdec/reelnotes/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4, time.Hour)
	return auth, db
}

func signup(t *testing.T, auth *service.AuthService, name, email string) *domain.User {
	t.Helper()
	user, _, err := auth.Signup(context.Background(), service.SignupInput{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Signup %s: %v", email, err)
	}
	return user
}

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
