package models

import "time"

// Contact is an entry in a user's contact book. Username is the owner and is
// set once at creation.
type Contact struct {
	ID        string    `gorm:"primaryKey;type:varchar(100)"`
	Username  string    `gorm:"type:varchar(100);not null;index"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  *string   `gorm:"type:varchar(100)"`
	Email     *string   `gorm:"type:varchar(100)"`
	Phone     *string   `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateContactRequest is the body of POST /api/contacts.
type CreateContactRequest struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// UpdateContactRequest is the body of PUT /api/contacts/:contactId.
// Only non-nil fields are applied.
type UpdateContactRequest struct {
	ID        string  `json:"-"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// ContactResponse is the public view of a contact.
type ContactResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// ToResponse converts c to its public view.
func (c *Contact) ToResponse() ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}
