package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/reelnotes/internal/domain"
)

var looksLikeEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

// AuthService handles signup, login, password changes and bearer tokens.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		tokenTTL:   tokenTTL,
	}
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// Signup creates a new account and returns it with a fresh token.
// A taken email yields domain.ErrDuplicateEmail and no row is written.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in); err != nil {
		return nil, "", err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	// The unique index still guards against a concurrent signup.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate jwt: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// The identifier is treated as an email when it looks like one, otherwise
// as a display name. A name shared by several accounts is rejected with
// domain.ErrAmbiguousUsername.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		fields := map[string]string{}
		if identifier == "" {
			fields["email"] = "is required"
		}
		if password == "" {
			fields["password"] = "is required"
		}
		return nil, "", &domain.ValidationError{Fields: fields}
	}

	user, err := s.lookup(ctx, identifier)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate jwt: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) lookup(ctx context.Context, identifier string) (*domain.User, error) {
	if looksLikeEmail.MatchString(identifier) {
		user, err := s.users.GetByEmail(ctx, identifier)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrUnauthorized
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
		return user, nil
	}

	users, err := s.users.FindByName(ctx, identifier, 2)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	switch len(users) {
	case 0:
		return nil, domain.ErrUnauthorized
	case 1:
		return &users[0], nil
	default:
		return nil, domain.ErrAmbiguousUsername
	}
}

// ChangePassword replaces the password of userID after checking the current
// one. Only the account owner may do this.
func (s *AuthService) ChangePassword(ctx context.Context, callerID, userID int64, current, next string) error {
	if callerID != userID {
		return domain.ErrForbidden
	}
	if err := check(struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required,min=6,maxbytes=72"`
	}{current, next}); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"name":  user.Name,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
		"jti":   uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
