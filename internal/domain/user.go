package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// FindByName returns up to limit users sharing the given name. Names are
	// not unique, so callers must handle more than one match.
	FindByName(ctx context.Context, name string, limit int) ([]User, error)
	// EmailTaken reports whether another user (not excludeID) owns the email.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}
