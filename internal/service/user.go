package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/reelnotes/internal/domain"
)

// UserService manages profiles. Mutations are limited to the account owner.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

type UpdateUserInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser changes name and email. The email must not belong to another
// account.
func (s *UserService) UpdateUser(ctx context.Context, callerID, id int64, in UpdateUserInput) (*domain.User, error) {
	if callerID != id {
		return nil, domain.ErrForbidden
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, in.Email, id)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = in.Name
	user.Email = in.Email
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account along with its favorites and reviews.
func (s *UserService) DeleteUser(ctx context.Context, callerID, id int64) error {
	if callerID != id {
		return domain.ErrForbidden
	}
	return s.users.Delete(ctx, id)
}
