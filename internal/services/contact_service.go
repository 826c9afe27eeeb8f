package services

import (
	"context"
	"time"

	"kontak/internal/events"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/search"
	"kontak/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactService handles the contacts of the authenticated user.
type ContactService struct {
	store     repositories.Store
	validator *validation.Validator
	logger    *zap.Logger
	notifier  notifier
}

// NewContactService creates a new ContactService. publisher may be nil.
func NewContactService(store repositories.Store, validator *validation.Validator, publisher events.Publisher, logger *zap.Logger) *ContactService {
	return &ContactService{
		store:     store,
		validator: validator,
		logger:    logger,
		notifier:  notifier{publisher: publisher, logger: logger},
	}
}

// Create adds a contact owned by user.
func (s *ContactService) Create(ctx context.Context, user *models.User, req models.CreateContactRequest) (*models.ContactResponse, error) {
	if err := s.validator.CreateContact(req); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		ID:        uuid.NewString(),
		Username:  user.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		return tx.Contacts().Create(ctx, contact)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.publish(ctx, events.ContactCreated, s.event(contact))
	resp := contact.ToResponse()
	return &resp, nil
}

// Get returns a contact of user.
func (s *ContactService) Get(ctx context.Context, user *models.User, contactID string) (*models.ContactResponse, error) {
	contact, err := ResolveContact(ctx, s.store, user, contactID)
	if err != nil {
		return nil, err
	}
	resp := contact.ToResponse()
	return &resp, nil
}

// Update overwrites the fields supplied in req and keeps the rest.
func (s *ContactService) Update(ctx context.Context, user *models.User, req models.UpdateContactRequest) (*models.ContactResponse, error) {
	if err := s.validator.UpdateContact(req); err != nil {
		return nil, err
	}

	var contact *models.Contact
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		contact, err = ResolveContact(ctx, tx, user, req.ID)
		if err != nil {
			return err
		}
		if req.FirstName != nil {
			contact.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			contact.LastName = req.LastName
		}
		if req.Email != nil {
			contact.Email = req.Email
		}
		if req.Phone != nil {
			contact.Phone = req.Phone
		}
		return tx.Contacts().Update(ctx, contact)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.publish(ctx, events.ContactUpdated, s.event(contact))
	resp := contact.ToResponse()
	return &resp, nil
}

// Delete removes a contact together with all of its addresses.
func (s *ContactService) Delete(ctx context.Context, user *models.User, contactID string) error {
	var contact *models.Contact
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		contact, err = ResolveContact(ctx, tx, user, contactID)
		if err != nil {
			return err
		}
		if err := tx.Addresses().DeleteByContact(ctx, contact.ID); err != nil {
			return err
		}
		return tx.Contacts().Delete(ctx, contact.ID)
	})
	if err != nil {
		return err
	}

	s.notifier.publish(ctx, events.ContactDeleted, s.event(contact))
	return nil
}

// Search returns one page of the contacts of user matching filter.
func (s *ContactService) Search(ctx context.Context, user *models.User, filter search.Filter) ([]models.ContactResponse, search.Paging, error) {
	if err := s.validator.SearchFilter(filter); err != nil {
		return nil, search.Paging{}, err
	}

	query := search.ContactQuery(filter, user.Username)
	contacts, total, err := s.store.Contacts().Search(ctx, query, filter.Offset(), filter.Size)
	if err != nil {
		return nil, search.Paging{}, err
	}

	responses := make([]models.ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, contacts[i].ToResponse())
	}
	return responses, search.NewPaging(filter, total), nil
}

func (s *ContactService) event(contact *models.Contact) events.ContactEvent {
	return events.ContactEvent{
		ContactID:  contact.ID,
		Username:   contact.Username,
		OccurredAt: time.Now().UTC(),
	}
}
