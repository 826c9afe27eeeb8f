package services_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"kontak/internal/errs"
	"kontak/internal/events"
	"kontak/internal/models"
	"kontak/internal/search"
	"kontak/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContactService(f *fixture, pub events.Publisher) *services.ContactService {
	return services.NewContactService(f.store, f.validator, pub, f.logger)
}

func TestContactService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	svc := newContactService(f, nil)

	resp, err := svc.Create(ctx, alice, models.CreateContactRequest{
		FirstName: "Budi",
		LastName:  ptr("Santoso"),
		Email:     ptr("budi@example.com"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Budi", resp.FirstName)
	assert.Equal(t, "Santoso", *resp.LastName)
	assert.Nil(t, resp.Phone)

	stored, err := f.store.Contacts().GetByOwnerAndID(ctx, "alice", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)

	// Test validation
	_, err = svc.Create(ctx, alice, models.CreateContactRequest{FirstName: " ", Email: ptr("not-an-email")})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestContactService_OwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	svc := newContactService(f, nil)

	created, err := svc.Create(ctx, alice, models.CreateContactRequest{FirstName: "Budi"})
	require.NoError(t, err)

	_, missingErr := svc.Get(ctx, alice, "does-not-exist")
	_, foreignErr := svc.Get(ctx, bob, created.ID)
	require.ErrorIs(t, missingErr, errs.ErrNotFound)
	require.ErrorIs(t, foreignErr, errs.ErrNotFound)
	assert.Equal(t, missingErr.Error(), foreignErr.Error())
	assert.Equal(t, "Contact is not found", foreignErr.Error())

	_, err = svc.Update(ctx, bob, models.UpdateContactRequest{ID: created.ID, FirstName: ptr("Hijacked")})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, created.ID), errs.ErrNotFound)

	got, err := svc.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", got.FirstName)
}

func TestContactService_UpdateIsPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	svc := newContactService(f, nil)

	created, err := svc.Create(ctx, alice, models.CreateContactRequest{
		FirstName: "Budi",
		LastName:  ptr("Santoso"),
		Email:     ptr("budi@example.com"),
		Phone:     ptr("0811"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, models.UpdateContactRequest{ID: created.ID, Email: ptr("b@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Budi", updated.FirstName)
	assert.Equal(t, "Santoso", *updated.LastName)
	assert.Equal(t, "b@example.com", *updated.Email)
	assert.Equal(t, "0811", *updated.Phone)

	got, err := svc.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}

func TestContactService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	contacts := newContactService(f, nil)
	addresses := services.NewAddressService(f.store, f.validator, nil, f.logger)

	created, err := contacts.Create(ctx, alice, models.CreateContactRequest{FirstName: "Budi"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := addresses.Create(ctx, alice, models.CreateAddressRequest{ContactID: created.ID, Country: "Indonesia"})
		require.NoError(t, err)
	}

	require.NoError(t, contacts.Delete(ctx, alice, created.ID))

	_, err = contacts.Get(ctx, alice, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	remaining, err := f.store.Addresses().ListByContact(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestContactService_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	svc := newContactService(f, nil)

	for i := 0; i < 100; i++ {
		_, err := svc.Create(ctx, alice, models.CreateContactRequest{
			FirstName: fmt.Sprintf("Contact%03d", i),
			Email:     ptr(fmt.Sprintf("contact%03d@example.com", i)),
			Phone:     ptr(fmt.Sprintf("0812%04d", i)),
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, bob, models.CreateContactRequest{FirstName: "Contact of bob"})
	require.NoError(t, err)

	t.Run("pages", func(t *testing.T) {
		data, paging, err := svc.Search(ctx, alice, search.Filter{Page: 0, Size: 20})
		require.NoError(t, err)
		assert.Len(t, data, 20)
		assert.Equal(t, search.Paging{CurrentPage: 0, TotalPage: 5, Size: 20}, paging)
		assert.Equal(t, "Contact000", data[0].FirstName)

		data, paging, err = svc.Search(ctx, alice, search.Filter{Page: 4, Size: 20})
		require.NoError(t, err)
		assert.Len(t, data, 20)
		assert.Equal(t, 4, paging.CurrentPage)
		assert.Equal(t, "Contact080", data[0].FirstName)
	})

	t.Run("past the last page", func(t *testing.T) {
		data, paging, err := svc.Search(ctx, alice, search.Filter{Page: 7, Size: 20})
		require.NoError(t, err)
		assert.Empty(t, data)
		assert.Equal(t, 5, paging.TotalPage)
	})

	t.Run("no match", func(t *testing.T) {
		data, paging, err := svc.Search(ctx, alice, search.Filter{Name: ptr("zzz"), Size: 10})
		require.NoError(t, err)
		assert.NotNil(t, data)
		assert.Empty(t, data)
		assert.Equal(t, search.Paging{CurrentPage: 0, TotalPage: 0, Size: 10}, paging)
	})

	t.Run("criteria are combined with AND", func(t *testing.T) {
		data, _, err := svc.Search(ctx, alice, search.Filter{Name: ptr("contact01"), Email: ptr("015@"), Size: 10})
		require.NoError(t, err)
		require.Len(t, data, 1)
		assert.Equal(t, "Contact015", data[0].FirstName)

		data, _, err = svc.Search(ctx, alice, search.Filter{Name: ptr("contact01"), Email: ptr("020@"), Size: 10})
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("phone", func(t *testing.T) {
		data, paging, err := svc.Search(ctx, alice, search.Filter{Phone: ptr("08120099"), Size: 10})
		require.NoError(t, err)
		require.Len(t, data, 1)
		assert.Equal(t, 1, paging.TotalPage)
	})

	t.Run("owner scoped", func(t *testing.T) {
		data, _, err := svc.Search(ctx, bob, search.Filter{Size: 10})
		require.NoError(t, err)
		require.Len(t, data, 1)
		assert.Equal(t, "Contact of bob", data[0].FirstName)
	})

	t.Run("invalid paging", func(t *testing.T) {
		_, _, err := svc.Search(ctx, alice, search.Filter{Page: -1, Size: 0})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("offset overflow", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_, _, err := svc.Search(ctx, alice, search.Filter{Page: 2, Size: math.MaxInt/2 + 1})
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
		_, _, err := svc.Search(ctx, alice, search.Filter{Page: math.MaxInt / search.MaxSize, Size: search.MaxSize})
		require.NoError(t, err)
	})
}

func TestContactService_PublishesAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	pub := new(MockPublisher)
	svc := newContactService(f, pub)

	pub.On("Publish", mock.Anything, events.ContactCreated, mock.AnythingOfType("events.ContactEvent")).Return(nil).Once()
	created, err := svc.Create(ctx, alice, models.CreateContactRequest{FirstName: "Budi"})
	require.NoError(t, err)

	// A failing publisher does not fail the request.
	pub.On("Publish", mock.Anything, events.ContactUpdated, mock.AnythingOfType("events.ContactEvent")).Return(errors.New("broker down")).Once()
	_, err = svc.Update(ctx, alice, models.UpdateContactRequest{ID: created.ID, Phone: ptr("0811")})
	require.NoError(t, err)

	// Nothing is published for a rejected write.
	_, err = svc.Update(ctx, alice, models.UpdateContactRequest{ID: "missing", Phone: ptr("0811")})
	require.ErrorIs(t, err, errs.ErrNotFound)

	pub.On("Publish", mock.Anything, events.ContactDeleted, mock.MatchedBy(func(e events.ContactEvent) bool {
		return e.ContactID == created.ID && e.Username == "alice"
	})).Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, alice, created.ID))

	pub.AssertExpectations(t)
	pub.AssertNumberOfCalls(t, "Publish", 3)
}
