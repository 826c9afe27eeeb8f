package repositories

import (
	"context"
	"errors"
	"fmt"

	"kontak/internal/errs"
	"kontak/internal/models"

	"gorm.io/gorm"
)

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{
		db: db,
	}
}

// Create creates a new address in the database.
func (r *GORMAddressRepository) Create(ctx context.Context, address *models.Address) error {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

// GetByContactAndID retrieves an address of the contact by its ID.
func (r *GORMAddressRepository) GetByContactAndID(ctx context.Context, contactID, id string) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "contact_id = ? AND id = ?", contactID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("address with ID %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get address by ID %s: %w", id, err)
	}
	return &address, nil
}

// ListByContact retrieves every address of the contact in creation order.
func (r *GORMAddressRepository) ListByContact(ctx context.Context, contactID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.WithContext(ctx).Where("contact_id = ?", contactID).Order("created_at ASC, id ASC").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses of contact %s: %w", contactID, err)
	}
	return addresses, nil
}

// Update writes every column of address, NULLs included.
func (r *GORMAddressRepository) Update(ctx context.Context, address *models.Address) error {
	res := r.db.WithContext(ctx).Model(&models.Address{}).Where("id = ?", address.ID).Updates(map[string]any{
		"street":      address.Street,
		"city":        address.City,
		"province":    address.Province,
		"country":     address.Country,
		"postal_code": address.PostalCode,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address with ID %s: %w", address.ID, errs.ErrNotFound)
	}
	return nil
}

// Delete deletes an address by its ID from the database.
func (r *GORMAddressRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address with ID %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// DeleteByContact deletes every address of the contact.
func (r *GORMAddressRepository) DeleteByContact(ctx context.Context, contactID string) error {
	if err := r.db.WithContext(ctx).Where("contact_id = ?", contactID).Delete(&models.Address{}).Error; err != nil {
		return fmt.Errorf("failed to delete addresses of contact %s: %w", contactID, err)
	}
	return nil
}
