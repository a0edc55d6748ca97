package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/portfolio-api/internal/domain/user"
	"github.com/geocoder89/portfolio-api/internal/security"
)

var (
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
}

type TokenIssuer interface {
	GenerateToken(email string) (string, error)
}

type Service struct {
	users  UserStore
	tokens TokenIssuer
}

func NewService(users UserStore, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register stores a new user unless the email is already present.
// The lookup and the insert are separate store calls; two concurrent registrations for the
// same email can both pass the lookup unless the store enforces a unique email index.
func (s *Service) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	_, err := s.users.GetByEmail(ctx, req.Email)

	if err == nil {
		return user.User{}, ErrDuplicateUser
	}

	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrDuplicateUser
		}

		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

// Login checks the password against the stored hash and issues a session token.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (string, error) {
	found, err := s.users.GetByEmail(ctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}

		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := security.CheckPassword(found.PasswordHash, req.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(found.Email)

	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}
