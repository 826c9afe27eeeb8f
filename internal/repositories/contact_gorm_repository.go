package repositories

import (
	"context"
	"errors"
	"fmt"

	"kontak/internal/errs"
	"kontak/internal/models"
	"kontak/internal/search"

	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create creates a new contact in the database.
func (r *GORMContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// GetByOwnerAndID retrieves a contact of username by its ID.
func (r *GORMContactRepository) GetByOwnerAndID(ctx context.Context, username, id string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).First(&contact, "username = ? AND id = ?", username, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact with ID %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact by ID %s: %w", id, err)
	}
	return &contact, nil
}

// Update saves the name, email and phone columns of contact.
func (r *GORMContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	res := r.db.WithContext(ctx).Model(&models.Contact{}).Where("id = ?", contact.ID).Updates(map[string]any{
		"first_name": contact.FirstName,
		"last_name":  contact.LastName,
		"email":      contact.Email,
		"phone":      contact.Phone,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %s: %w", contact.ID, errs.ErrNotFound)
	}
	return nil
}

// Delete deletes a contact by its ID from the database.
func (r *GORMContactRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

type contactRow struct {
	models.Contact
	Total int64
}

// Search counts and fetches the matching contacts in one statement so the
// total and the page come from the same snapshot.
func (r *GORMContactRepository) Search(ctx context.Context, query search.Predicate, offset, limit int) ([]models.Contact, int64, error) {
	db := search.Apply(r.db.WithContext(ctx).Table("contacts"), query)

	var rows []contactRow
	err := db.Session(&gorm.Session{}).
		Select("contacts.*, COUNT(*) OVER () AS total").
		Order("first_name ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search contacts: %w", err)
	}

	contacts := make([]models.Contact, len(rows))
	for i := range rows {
		contacts[i] = rows[i].Contact
	}
	if len(rows) > 0 {
		return contacts, rows[0].Total, nil
	}

	// Past the last page the window is empty, so count separately.
	var total int64
	if offset > 0 {
		if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
		}
	}
	return contacts, total, nil
}
