package repositories

import (
	"context"

	"kontak/internal/models"
	"kontak/internal/search"
)

// ContactRepository defines the interface for contact data access.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	// GetByOwnerAndID returns the contact only when it belongs to username.
	GetByOwnerAndID(ctx context.Context, username, id string) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id string) error
	// Search returns the page of contacts matching query, ordered by first
	// name then id, and the total number of matching contacts.
	Search(ctx context.Context, query search.Predicate, offset, limit int) ([]models.Contact, int64, error)
}
