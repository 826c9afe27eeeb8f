package services

import (
	"context"
	"time"

	"kontak/internal/events"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddressService handles the addresses of the contacts of the authenticated user.
type AddressService struct {
	store     repositories.Store
	validator *validation.Validator
	logger    *zap.Logger
	notifier  notifier
}

// NewAddressService creates a new AddressService. publisher may be nil.
func NewAddressService(store repositories.Store, validator *validation.Validator, publisher events.Publisher, logger *zap.Logger) *AddressService {
	return &AddressService{
		store:     store,
		validator: validator,
		logger:    logger,
		notifier:  notifier{publisher: publisher, logger: logger},
	}
}

func (s *AddressService) Create(ctx context.Context, user *models.User, req models.CreateAddressRequest) (*models.AddressResponse, error) {
	if err := s.validator.CreateAddress(req); err != nil {
		return nil, err
	}

	var address *models.Address
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		contact, err := ResolveContact(ctx, tx, user, req.ContactID)
		if err != nil {
			return err
		}
		address = &models.Address{
			ID:         uuid.NewString(),
			ContactID:  contact.ID,
			Street:     req.Street,
			City:       req.City,
			Province:   req.Province,
			Country:    req.Country,
			PostalCode: req.PostalCode,
		}
		return tx.Addresses().Create(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.publish(ctx, events.AddressCreated, s.event(user, address))
	resp := address.ToResponse()
	return &resp, nil
}

func (s *AddressService) Get(ctx context.Context, user *models.User, contactID, addressID string) (*models.AddressResponse, error) {
	_, address, err := ResolveAddress(ctx, s.store, user, contactID, addressID)
	if err != nil {
		return nil, err
	}
	resp := address.ToResponse()
	return &resp, nil
}

// Update replaces every field of the address with the values in req,
// clearing the optional ones that are absent.
func (s *AddressService) Update(ctx context.Context, user *models.User, req models.UpdateAddressRequest) (*models.AddressResponse, error) {
	if err := s.validator.UpdateAddress(req); err != nil {
		return nil, err
	}

	var address *models.Address
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		_, address, err = ResolveAddress(ctx, tx, user, req.ContactID, req.AddressID)
		if err != nil {
			return err
		}
		address.Street = req.Street
		address.City = req.City
		address.Province = req.Province
		address.Country = req.Country
		address.PostalCode = req.PostalCode
		return tx.Addresses().Update(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.publish(ctx, events.AddressUpdated, s.event(user, address))
	resp := address.ToResponse()
	return &resp, nil
}

func (s *AddressService) Delete(ctx context.Context, user *models.User, contactID, addressID string) error {
	var address *models.Address
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		_, address, err = ResolveAddress(ctx, tx, user, contactID, addressID)
		if err != nil {
			return err
		}
		return tx.Addresses().Delete(ctx, address.ID)
	})
	if err != nil {
		return err
	}

	s.notifier.publish(ctx, events.AddressDeleted, s.event(user, address))
	return nil
}

// List returns every address of a contact of user.
func (s *AddressService) List(ctx context.Context, user *models.User, contactID string) ([]models.AddressResponse, error) {
	contact, err := ResolveContact(ctx, s.store, user, contactID)
	if err != nil {
		return nil, err
	}
	addresses, err := s.store.Addresses().ListByContact(ctx, contact.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, addresses[i].ToResponse())
	}
	return responses, nil
}

func (s *AddressService) event(user *models.User, address *models.Address) events.AddressEvent {
	return events.AddressEvent{
		AddressID:  address.ID,
		ContactID:  address.ContactID,
		Username:   user.Username,
		OccurredAt: time.Now().UTC(),
	}
}
