package repositories

import (
	"context"

	"kontak/internal/models"
)

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	GetByContactAndID(ctx context.Context, contactID, id string) (*models.Address, error)
	ListByContact(ctx context.Context, contactID string) ([]models.Address, error)
	// Update replaces every column of an existing address.
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id string) error
	DeleteByContact(ctx context.Context, contactID string) error
}
