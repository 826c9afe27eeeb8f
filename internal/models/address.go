package models

import "time"

// Address belongs to exactly one contact and is only reachable through it.
type Address struct {
	ID         string    `gorm:"primaryKey;type:varchar(100)"`
	ContactID  string    `gorm:"type:varchar(100);not null;index"`
	Street     *string   `gorm:"type:varchar(200)"`
	City       *string   `gorm:"type:varchar(100)"`
	Province   *string   `gorm:"type:varchar(100)"`
	Country    string    `gorm:"type:varchar(100);not null"`
	PostalCode *string   `gorm:"type:varchar(10)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateAddressRequest is the body of POST /api/contacts/:contactId/addresses.
type CreateAddressRequest struct {
	ContactID  string  `json:"-"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postalCode"`
}

// UpdateAddressRequest replaces every field of an address, nil included.
type UpdateAddressRequest struct {
	ContactID  string  `json:"-"`
	AddressID  string  `json:"-"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postalCode"`
}

// AddressResponse is the public view of an address.
type AddressResponse struct {
	ID         string  `json:"id"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postalCode"`
}

// ToResponse converts a to its public view.
func (a *Address) ToResponse() AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}
