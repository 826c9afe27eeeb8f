package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kontak/internal/errs"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenTTL is how long a session token stays valid after login.
const TokenTTL = 7 * 24 * time.Hour

const wrongCredentials = "Username or password is wrong"

// AuthService handles login, logout and authentication of session tokens.
type AuthService struct {
	store     repositories.Store
	hasher    PasswordHasher
	validator *validation.Validator
	logger    *zap.Logger
	now       func() time.Time
	newToken  func() string
}

// AuthOption customizes an AuthService.
type AuthOption func(*AuthService)

// WithClock replaces the wall clock used for token expiry.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithTokenGenerator replaces the random token generator.
func WithTokenGenerator(newToken func() string) AuthOption {
	return func(s *AuthService) { s.newToken = newToken }
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repositories.Store, hasher PasswordHasher, validator *validation.Validator, logger *zap.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		store:     store,
		hasher:    hasher,
		validator: validator,
		logger:    logger,
		now:       time.Now,
		newToken:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials and issues a new session token, replacing
// any previous one.
func (s *AuthService) Login(ctx context.Context, req models.LoginUserRequest) (*models.TokenResponse, error) {
	if err := s.validator.LoginUser(req); err != nil {
		return nil, err
	}

	var resp *models.TokenResponse
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		user, err := tx.Users().GetByUsername(ctx, req.Username)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errs.New(errs.ErrUnauthorized, wrongCredentials)
			}
			return err
		}
		if !s.hasher.Verify(req.Password, user.Password) {
			return errs.New(errs.ErrUnauthorized, wrongCredentials)
		}

		token := s.newToken()
		expiredAt := s.now().Add(TokenTTL).UnixMilli()
		if err := tx.Users().UpdateSession(ctx, user.Username, &token, expiredAt); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		resp = &models.TokenResponse{Token: token, ExpiredAt: expiredAt}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("username", req.Username))
	return resp, nil
}

// Logout clears the session of user. Logging out twice is harmless.
func (s *AuthService) Logout(ctx context.Context, user *models.User) error {
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		return tx.Users().UpdateSession(ctx, user.Username, nil, 0)
	})
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	user.Token = nil
	user.TokenExpiredAt = 0

	s.logger.Info("user logged out", zap.String("username", user.Username))
	return nil
}

// Authenticate resolves the user holding token. Missing, unknown and expired
// tokens all fail with the same Unauthorized error.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, errs.Unauthorized()
	}

	user, err := s.store.Users().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Unauthorized()
		}
		return nil, err
	}

	if !user.HasSession(s.now()) {
		return nil, errs.Unauthorized()
	}
	return user, nil
}
