package services_test

import (
	"context"
	"testing"

	"kontak/internal/errs"
	"kontak/internal/events"
	"kontak/internal/models"
	"kontak/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAddressFixture(t *testing.T, pub events.Publisher) (*fixture, *services.AddressService, *models.User, string) {
	t.Helper()
	f := newFixture(t)
	alice := f.register(t, "alice")
	contact, err := newContactService(f, nil).Create(context.Background(), alice, models.CreateContactRequest{FirstName: "Budi"})
	require.NoError(t, err)
	return f, services.NewAddressService(f.store, f.validator, pub, f.logger), alice, contact.ID
}

func TestAddressService_CreateAndGet(t *testing.T) {
	f, svc, alice, contactID := newAddressFixture(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, models.CreateAddressRequest{
		ContactID:  contactID,
		Street:     ptr("Jalan Merdeka 1"),
		City:       ptr("Jakarta"),
		Country:    "Indonesia",
		PostalCode: ptr("10110"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, alice, contactID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	stored, err := f.store.Addresses().GetByContactAndID(ctx, contactID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, contactID, stored.ContactID)

	// Test validation
	_, err = svc.Create(ctx, alice, models.CreateAddressRequest{ContactID: contactID, PostalCode: ptr("12345678901")})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// Test unknown contact
	_, err = svc.Create(ctx, alice, models.CreateAddressRequest{ContactID: "missing", Country: "Indonesia"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "Contact is not found", err.Error())
}

func TestAddressService_UpdateReplacesEveryField(t *testing.T) {
	_, svc, alice, contactID := newAddressFixture(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, models.CreateAddressRequest{
		ContactID:  contactID,
		Street:     ptr("Jalan Merdeka 1"),
		City:       ptr("Jakarta"),
		Province:   ptr("DKI Jakarta"),
		Country:    "Indonesia",
		PostalCode: ptr("10110"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, models.UpdateAddressRequest{
		ContactID: contactID,
		AddressID: created.ID,
		City:      ptr("Bandung"),
		Country:   "Indonesia",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Bandung", *updated.City)
	assert.Nil(t, updated.Street)
	assert.Nil(t, updated.Province)
	assert.Nil(t, updated.PostalCode)

	got, err := svc.Get(ctx, alice, contactID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}

func TestAddressService_Ownership(t *testing.T) {
	f, svc, alice, contactID := newAddressFixture(t, nil)
	ctx := context.Background()
	bob := f.register(t, "bob")

	created, err := svc.Create(ctx, alice, models.CreateAddressRequest{ContactID: contactID, Country: "Indonesia"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, contactID, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "Contact is not found", err.Error())
	_, err = svc.List(ctx, bob, contactID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, contactID, created.ID), errs.ErrNotFound)

	_, err = svc.Get(ctx, alice, contactID, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "Address is not found", err.Error())

	// An address is only reachable through its own contact.
	other, err := newContactService(f, nil).Create(ctx, alice, models.CreateContactRequest{FirstName: "Sari"})
	require.NoError(t, err)
	_, err = svc.Get(ctx, alice, other.ID, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "Address is not found", err.Error())
}

func TestAddressService_ListAndDelete(t *testing.T) {
	_, svc, alice, contactID := newAddressFixture(t, nil)
	ctx := context.Background()

	list, err := svc.List(ctx, alice, contactID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first, err := svc.Create(ctx, alice, models.CreateAddressRequest{ContactID: contactID, Country: "Indonesia"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, models.CreateAddressRequest{ContactID: contactID, Country: "Malaysia"})
	require.NoError(t, err)

	list, err = svc.List(ctx, alice, contactID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, alice, contactID, first.ID))
	_, err = svc.Get(ctx, alice, contactID, first.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	list, err = svc.List(ctx, alice, contactID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Malaysia", list[0].Country)
}

func TestAddressService_PublishesEvents(t *testing.T) {
	pub := new(MockPublisher)
	_, svc, alice, contactID := newAddressFixture(t, pub)
	ctx := context.Background()

	isFor := func(contact string) any {
		return mock.MatchedBy(func(e events.AddressEvent) bool {
			return e.ContactID == contact && e.Username == "alice" && e.AddressID != ""
		})
	}
	pub.On("Publish", mock.Anything, events.AddressCreated, isFor(contactID)).Return(nil).Once()
	pub.On("Publish", mock.Anything, events.AddressUpdated, isFor(contactID)).Return(nil).Once()
	pub.On("Publish", mock.Anything, events.AddressDeleted, isFor(contactID)).Return(nil).Once()

	created, err := svc.Create(ctx, alice, models.CreateAddressRequest{ContactID: contactID, Country: "Indonesia"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, alice, models.UpdateAddressRequest{ContactID: contactID, AddressID: created.ID, Country: "Malaysia"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, alice, contactID, created.ID))

	pub.AssertExpectations(t)
}
