package repositories

import (
	"context"

	"kontak/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// UpdateSession writes only the token and its expiry. A nil token clears
	// the session.
	UpdateSession(ctx context.Context, username string, token *string, expiredAt int64) error
	// UpdateProfile writes only the name and password digest.
	UpdateProfile(ctx context.Context, username, name, password string) error
}
