package repositories

import (
	"context"
	"errors"
	"fmt"

	"kontak/internal/errs"
	"kontak/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %s: %w", user.Username, errs.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s: %w", username, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByToken retrieves the user holding the exact session token.
func (r *GORMUserRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user by token: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}
	return &user, nil
}

// ExistsByUsername reports whether a user with the username is registered.
func (r *GORMUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username %s: %w", username, err)
	}
	return count > 0, nil
}

// UpdateSession saves the session columns of a user, writing NULL for a
// cleared token.
func (r *GORMUserRepository) UpdateSession(ctx context.Context, username string, token *string, expiredAt int64) error {
	return r.update(ctx, username, map[string]any{
		"token":            token,
		"token_expired_at": expiredAt,
	})
}

// UpdateProfile saves the name and password digest of a user.
func (r *GORMUserRepository) UpdateProfile(ctx context.Context, username, name, password string) error {
	return r.update(ctx, username, map[string]any{
		"name":     name,
		"password": password,
	})
}

func (r *GORMUserRepository) update(ctx context.Context, username string, columns map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Updates(columns)
	if res.Error != nil {
		return fmt.Errorf("failed to update user %s: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with username %s: %w", username, errs.ErrNotFound)
	}
	return nil
}
