package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/portfolio-api/internal/config"
	"github.com/geocoder89/portfolio-api/internal/credentials"
	"github.com/geocoder89/portfolio-api/internal/domain/user"
	"github.com/gin-gonic/gin"
)

const (
	MsgRegistered         = "User registered successfully"
	MsgUserExists         = "User already exists"
	MsgLoggedIn           = "Login successful"
	MsgInvalidCredentials = "Invalid email or password"
)

type Authenticator interface {
	Register(ctx context.Context, req user.RegisterRequest) (user.User, error)
	Login(ctx context.Context, req user.LoginRequest) (string, error)
}

type AuthHandler struct {
	svc Authenticator
}

func NewAuthHandler(svc Authenticator) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// one lookup, one bcrypt hash, one insert
	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)

	defer cancel()

	_, err := h.svc.Register(cctx, req)

	if err != nil {
		if errors.Is(err, credentials.ErrDuplicateUser) {
			RespondBadRequest(ctx, MsgUserExists, nil)
			return
		}

		slog.Default().ErrorContext(ctx.Request.Context(), "register_failed", "err", err)
		RespondInternal(ctx, "Could not register user")
		return
	}

	RespondOK(ctx, http.StatusCreated, MsgRegistered, nil)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	token, err := h.svc.Login(cctx, req)

	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			RespondUnauthorized(ctx, MsgInvalidCredentials)
			return
		}

		slog.Default().ErrorContext(ctx.Request.Context(), "login_failed", "err", err)
		RespondInternal(ctx, "Could not log in")
		return
	}

	ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: MsgLoggedIn,
		Token:   token,
	})
}
