package services

import (
	"context"
	"errors"
	"fmt"

	"kontak/internal/errs"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/validation"

	"go.uber.org/zap"
)

// UserService handles registration and the profile of the current user.
type UserService struct {
	store     repositories.Store
	hasher    PasswordHasher
	validator *validation.Validator
	logger    *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store repositories.Store, hasher PasswordHasher, validator *validation.Validator, logger *zap.Logger) *UserService {
	return &UserService{
		store:     store,
		hasher:    hasher,
		validator: validator,
		logger:    logger,
	}
}

// Register creates a user with a hashed password.
func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) error {
	if err := s.validator.RegisterUser(req); err != nil {
		return err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		exists, err := tx.Users().ExistsByUsername(ctx, req.Username)
		if err != nil {
			return err
		}
		if exists {
			return errs.New(errs.ErrConflict, "Username is already registered")
		}
		return tx.Users().Create(ctx, &models.User{
			Username: req.Username,
			Name:     req.Name,
			Password: digest,
		})
	})
	if err != nil {
		// The unique key also catches a concurrent registration that passed the check.
		if errors.Is(err, errs.ErrConflict) {
			return errs.New(errs.ErrConflict, "Username is already registered")
		}
		return err
	}

	s.logger.Info("user registered", zap.String("username", req.Username))
	return nil
}

// Get returns the public view of user.
func (s *UserService) Get(user *models.User) models.UserResponse {
	return user.ToResponse()
}

// Update applies the supplied name and password to user.
func (s *UserService) Update(ctx context.Context, user *models.User, req models.UpdateUserRequest) (*models.UserResponse, error) {
	if err := s.validator.UpdateUser(req); err != nil {
		return nil, err
	}

	var digest string
	if req.Password != nil {
		var err error
		if digest, err = s.hasher.Hash(*req.Password); err != nil {
			return nil, err
		}
	}

	var updated *models.User
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		updated, err = tx.Users().GetByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if req.Name != nil {
			updated.Name = *req.Name
		}
		if req.Password != nil {
			updated.Password = digest
		}
		return tx.Users().UpdateProfile(ctx, updated.Username, updated.Name, updated.Password)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.Name = updated.Name
	user.Password = updated.Password

	resp := user.ToResponse()
	return &resp, nil
}
