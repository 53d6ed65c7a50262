// Package service orchestrates domain operations over the store, applying
// the access policy and coordinating side effects like search indexing and
// mail delivery.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/favouritebooks/favouritebooks-server/internal/auth"
	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/id"
	"github.com/favouritebooks/favouritebooks-server/internal/mailer"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
	"github.com/favouritebooks/favouritebooks-server/internal/validation"
)

// AuthService handles registration, login and password recovery.
type AuthService struct {
	store         store.Store
	tokens        *auth.TokenService
	mailer        mailer.Mailer
	logger        *slog.Logger
	validator     *validation.Validator
	baseURL       string
	resetDuration time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(st store.Store, tokens *auth.TokenService, m mailer.Mailer, baseURL string, resetDuration time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:         st,
		tokens:        tokens,
		mailer:        m,
		logger:        logger,
		validator:     validation.New(),
		baseURL:       baseURL,
		resetDuration: resetDuration,
	}
}

// RegisterRequest contains fields for creating an account.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=150,username"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=1024"`
	DisplayName string `json:"display_name" validate:"max=150"`
}

// Register creates a new account and returns the user with a session token,
// so registration logs the user straight in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", domainerrors.Wrap(err, domainerrors.CodeInternal, "hash password")
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateSessionToken(user)
	if err != nil {
		return nil, "", domainerrors.Wrap(err, domainerrors.CodeInternal, "generate session token")
	}

	s.logger.Info("user registered", "id", user.ID, "username", user.Username)
	return user, token, nil
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns the user with a session token.
// Wrong username and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, "", err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if domainerrors.Is(err, store.ErrUserNotFound) {
			return nil, "", domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, "", err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, "", domainerrors.Wrap(err, domainerrors.CodeInternal, "verify password")
	}
	if !ok {
		return nil, "", domainerrors.InvalidCredentials("invalid username or password")
	}

	user.LastLoginAt = time.Now().UTC()
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		// Login still succeeds; the timestamp is best-effort.
		s.logger.Warn("failed to record login time", "id", user.ID, "error", err)
	}

	token, err := s.tokens.GenerateSessionToken(user)
	if err != nil {
		return nil, "", domainerrors.Wrap(err, domainerrors.CodeInternal, "generate session token")
	}

	s.logger.Info("user logged in", "id", user.ID, "username", user.Username)
	return user, token, nil
}

// GetUser loads a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// ChangePasswordRequest carries the current and replacement passwords.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=1024"`
}

// ChangePassword replaces the actor's password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, actor domain.Actor, req ChangePasswordRequest) error {
	if !actor.IsAuthenticated() {
		return domainerrors.Unauthorized("login required")
	}
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.store.GetUser(ctx, actor.ID())
	if err != nil {
		return err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "verify password")
	}
	if !ok {
		return domainerrors.InvalidCredentials("current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "hash password")
	}

	user.PasswordHash = hash
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", user.ID)
	return nil
}

// RequestPasswordReset issues a reset token and mails a reset link.
// An unknown email reports success without sending anything, so the
// endpoint can't be used to probe which addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if domainerrors.Is(err, store.ErrUserNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	reset := &domain.PasswordReset{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(s.resetDuration),
	}
	if err := s.store.CreatePasswordReset(ctx, reset); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset/%s", s.baseURL, reset.Token)
	msg := mailer.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf("Hi %s,\n\nFollow this link to choose a new password:\n\n%s\n\nThe link expires in %s. If you didn't request this, ignore this message.\n",
			user.Username, link, s.resetDuration),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return err
	}

	s.logger.Info("password reset issued", "user_id", user.ID)
	return nil
}

// ResetPasswordRequest carries a reset token and the replacement password.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// ResetPassword consumes a reset token and sets the new password.
// The token is single-use; expired and unknown tokens fail identically.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	reset, err := s.store.GetPasswordReset(ctx, req.Token)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.Validation("reset link is invalid or has expired")
		}
		return err
	}
	if reset.Expired() {
		// Consume it so a later sweep doesn't have to.
		_ = s.store.DeletePasswordReset(ctx, reset.Token)
		return domainerrors.Validation("reset link is invalid or has expired")
	}

	user, err := s.store.GetUser(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "hash password")
	}

	user.PasswordHash = hash
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	if err := s.store.DeletePasswordReset(ctx, reset.Token); err != nil {
		s.logger.Warn("failed to delete used reset token", "error", err)
	}

	s.logger.Info("password reset completed", "user_id", user.ID)
	return nil
}

// SweepExpiredResets removes expired reset tokens. Called periodically
// from main.
func (s *AuthService) SweepExpiredResets(ctx context.Context) {
	n, err := s.store.DeleteExpiredPasswordResets(ctx)
	if err != nil {
		s.logger.Error("failed to sweep expired reset tokens", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("swept expired reset tokens", "count", n)
	}
}
