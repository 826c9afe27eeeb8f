package services

import (
	"context"
	"errors"

	"kontak/internal/errs"
	"kontak/internal/models"
	"kontak/internal/repositories"
)

// ResolveContact returns the contact only when owner owns it. A contact of
// another user is reported exactly like a missing one.
func ResolveContact(ctx context.Context, store repositories.Store, owner *models.User, contactID string) (*models.Contact, error) {
	contact, err := store.Contacts().GetByOwnerAndID(ctx, owner.Username, contactID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound("Contact is not found")
		}
		return nil, err
	}
	return contact, nil
}

// ResolveAddress resolves the contact through ResolveContact and then the
// address within it.
func ResolveAddress(ctx context.Context, store repositories.Store, owner *models.User, contactID, addressID string) (*models.Contact, *models.Address, error) {
	contact, err := ResolveContact(ctx, store, owner, contactID)
	if err != nil {
		return nil, nil, err
	}
	address, err := store.Addresses().GetByContactAndID(ctx, contact.ID, addressID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil, errs.NotFound("Address is not found")
		}
		return nil, nil, err
	}
	return contact, address, nil
}
