// Package service holds the business logic between the HTTP handlers and
// the repositories. Services validate input into domain values, orchestrate
// the auth primitives and stores, and return typed apperror values; they
// know nothing about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mi-wada/todo-api/internal/apperror"
	"github.com/mi-wada/todo-api/internal/auth"
	"github.com/mi-wada/todo-api/internal/model"
	"github.com/mi-wada/todo-api/internal/repository"
)

// AuthService implements registration and login.
//
// Dependencies are injected so tests can substitute fakes:
//   - users     repository.UserRepository → user rows and digests
//   - tokens    *auth.TokenService        → access token issuance
//   - passwords *auth.PasswordService     → bcrypt hashing
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a user account from raw credentials.
//
// Validation order is fixed: email first (Empty → TooLong → WrongFormat),
// then password (TooShort → TooLong) — the first invalid field is reported,
// never an aggregate. The plaintext password exists only long enough to be
// hashed; the digest is what gets stored. A duplicate email is reported as
// the 400 "EmailTaken", same as any other rejected field, so registration
// responses don't make a handy account-probing oracle out of status codes.
func (s *AuthService) Register(ctx context.Context, rawEmail, rawPassword string) (model.User, error) {
	email, err := model.NewEmail(rawEmail)
	if err != nil {
		return model.User{}, err
	}

	password, err := model.NewPassword(rawPassword)
	if err != nil {
		return model.User{}, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := model.NewUser(email)
	if err := s.users.Create(ctx, user, hash); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return model.User{}, apperror.Validation("EmailTaken", "Email is taken")
		}
		return model.User{}, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID.String()))

	return user, nil
}

// Login authenticates raw credentials and issues an access token.
//
// Unknown email and wrong password both return the same
// AuthenticationFailed — no anti-enumeration hole here either. Store
// failures pass through untyped and surface as a 500.
func (s *AuthService) Login(ctx context.Context, rawEmail, rawPassword string) (string, error) {
	email, err := model.NewEmail(rawEmail)
	if err != nil {
		// A malformed email cannot belong to an account; same coarse answer.
		return "", apperror.AuthenticationFailed()
	}

	user, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.AuthenticationFailed()
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if !s.passwords.Verify(hash, rawPassword) {
		return "", apperror.AuthenticationFailed()
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID.String()))

	return token, nil
}
