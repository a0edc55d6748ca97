package db

import (
	"context"
	"errors"

	"github.com/geocoder89/portfolio-api/internal/config"
	"github.com/geocoder89/portfolio-api/internal/credentials"
	"github.com/geocoder89/portfolio-api/internal/domain/user"
)

type Registrar interface {
	Register(ctx context.Context, req user.RegisterRequest) (user.User, error)
}

// EnsureAdminUser creates the configured admin account on an empty deployment.
// An existing account with the same email is left untouched, password included.
func EnsureAdminUser(ctx context.Context, reg Registrar, cfg config.Config) (bool, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	_, err := reg.Register(ctx, user.RegisterRequest{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})

	if errors.Is(err, credentials.ErrDuplicateUser) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
