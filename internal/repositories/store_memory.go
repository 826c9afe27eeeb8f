package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"kontak/internal/errs"
	"kontak/internal/models"
	"kontak/internal/search"
)

type memoryData struct {
	users     map[string]models.User
	contacts  map[string]models.Contact
	addresses map[string]models.Address
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		users:     make(map[string]models.User, len(d.users)),
		contacts:  make(map[string]models.Contact, len(d.contacts)),
		addresses: make(map[string]models.Address, len(d.addresses)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.contacts {
		c.contacts[k] = v
	}
	for k, v := range d.addresses {
		c.addresses[k] = v
	}
	return c
}

// InMemoryStore is a Store kept in process memory. A transaction holds the
// write lock for its whole duration and restores a snapshot on failure.
type InMemoryStore struct {
	mu   *sync.RWMutex
	data **memoryData
	inTx bool
}

// NewInMemoryStore creates an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	data := &memoryData{
		users:     make(map[string]models.User),
		contacts:  make(map[string]models.Contact),
		addresses: make(map[string]models.Address),
	}
	return &InMemoryStore{mu: &sync.RWMutex{}, data: &data}
}

func (s *InMemoryStore) Users() UserRepository { return &memoryUserRepository{s} }

func (s *InMemoryStore) Contacts() ContactRepository { return &memoryContactRepository{s} }

func (s *InMemoryStore) Addresses() AddressRepository { return &memoryAddressRepository{s} }

// Transaction runs fn with exclusive access to the store.
func (s *InMemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	snapshot := (*s.data).clone()
	tx := &InMemoryStore{mu: s.mu, data: s.data, inTx: true}
	if err := fn(tx); err != nil {
		*s.data = snapshot
		return err
	}
	return nil
}

func (s *InMemoryStore) read(fn func(d *memoryData)) {
	if !s.inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(*s.data)
}

func (s *InMemoryStore) write(fn func(d *memoryData) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(*s.data)
}

type memoryUserRepository struct{ s *InMemoryStore }

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	return r.s.write(func(d *memoryData) error {
		if _, ok := d.users[user.Username]; ok {
			return fmt.Errorf("user %s: %w", user.Username, errs.ErrConflict)
		}
		now := time.Now()
		user.CreatedAt, user.UpdatedAt = now, now
		d.users[user.Username] = *user
		return nil
	})
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	var (
		user models.User
		ok   bool
	)
	r.s.read(func(d *memoryData) { user, ok = d.users[username] })
	if !ok {
		return nil, fmt.Errorf("user with username %s: %w", username, errs.ErrNotFound)
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByToken(_ context.Context, token string) (*models.User, error) {
	var found *models.User
	r.s.read(func(d *memoryData) {
		for _, u := range d.users {
			if u.Token != nil && *u.Token == token {
				u := u
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("user by token: %w", errs.ErrNotFound)
	}
	return found, nil
}

func (r *memoryUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	var ok bool
	r.s.read(func(d *memoryData) { _, ok = d.users[username] })
	return ok, nil
}

func (r *memoryUserRepository) UpdateSession(_ context.Context, username string, token *string, expiredAt int64) error {
	return r.update(username, func(u *models.User) {
		u.Token = copyString(token)
		u.TokenExpiredAt = expiredAt
	})
}

func (r *memoryUserRepository) UpdateProfile(_ context.Context, username, name, password string) error {
	return r.update(username, func(u *models.User) {
		u.Name = name
		u.Password = password
	})
}

func (r *memoryUserRepository) update(username string, apply func(u *models.User)) error {
	return r.s.write(func(d *memoryData) error {
		stored, ok := d.users[username]
		if !ok {
			return fmt.Errorf("user with username %s: %w", username, errs.ErrNotFound)
		}
		apply(&stored)
		stored.UpdatedAt = time.Now()
		d.users[username] = stored
		return nil
	})
}

type memoryContactRepository struct{ s *InMemoryStore }

func (r *memoryContactRepository) Create(_ context.Context, contact *models.Contact) error {
	return r.s.write(func(d *memoryData) error {
		if _, ok := d.contacts[contact.ID]; ok {
			return fmt.Errorf("contact %s: %w", contact.ID, errs.ErrConflict)
		}
		now := time.Now()
		contact.CreatedAt, contact.UpdatedAt = now, now
		d.contacts[contact.ID] = *contact
		return nil
	})
}

func (r *memoryContactRepository) GetByOwnerAndID(_ context.Context, username, id string) (*models.Contact, error) {
	var (
		contact models.Contact
		ok      bool
	)
	r.s.read(func(d *memoryData) { contact, ok = d.contacts[id] })
	if !ok || contact.Username != username {
		return nil, fmt.Errorf("contact with ID %s: %w", id, errs.ErrNotFound)
	}
	return &contact, nil
}

func (r *memoryContactRepository) Update(_ context.Context, contact *models.Contact) error {
	return r.s.write(func(d *memoryData) error {
		stored, ok := d.contacts[contact.ID]
		if !ok {
			return fmt.Errorf("contact with ID %s: %w", contact.ID, errs.ErrNotFound)
		}
		stored.FirstName = contact.FirstName
		stored.LastName = contact.LastName
		stored.Email = contact.Email
		stored.Phone = contact.Phone
		stored.UpdatedAt = time.Now()
		d.contacts[contact.ID] = stored
		return nil
	})
}

func (r *memoryContactRepository) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *memoryData) error {
		if _, ok := d.contacts[id]; !ok {
			return fmt.Errorf("contact with ID %s: %w", id, errs.ErrNotFound)
		}
		delete(d.contacts, id)
		return nil
	})
}

func (r *memoryContactRepository) Search(_ context.Context, query search.Predicate, offset, limit int) ([]models.Contact, int64, error) {
	var matched []models.Contact
	r.s.read(func(d *memoryData) {
		for _, c := range d.contacts {
			if query.Match(&c) {
				matched = append(matched, c)
			}
		}
	})
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].FirstName != matched[j].FirstName {
			return matched[i].FirstName < matched[j].FirstName
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	if offset < 0 || limit < 0 || offset >= len(matched) {
		return []models.Contact{}, total, nil
	}
	end := offset + limit
	if end > len(matched) || end < offset {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type memoryAddressRepository struct{ s *InMemoryStore }

func (r *memoryAddressRepository) Create(_ context.Context, address *models.Address) error {
	return r.s.write(func(d *memoryData) error {
		if _, ok := d.addresses[address.ID]; ok {
			return fmt.Errorf("address %s: %w", address.ID, errs.ErrConflict)
		}
		now := time.Now()
		address.CreatedAt, address.UpdatedAt = now, now
		d.addresses[address.ID] = *address
		return nil
	})
}

func (r *memoryAddressRepository) GetByContactAndID(_ context.Context, contactID, id string) (*models.Address, error) {
	var (
		address models.Address
		ok      bool
	)
	r.s.read(func(d *memoryData) { address, ok = d.addresses[id] })
	if !ok || address.ContactID != contactID {
		return nil, fmt.Errorf("address with ID %s: %w", id, errs.ErrNotFound)
	}
	return &address, nil
}

func (r *memoryAddressRepository) ListByContact(_ context.Context, contactID string) ([]models.Address, error) {
	addresses := []models.Address{}
	r.s.read(func(d *memoryData) {
		for _, a := range d.addresses {
			if a.ContactID == contactID {
				addresses = append(addresses, a)
			}
		}
	})
	sort.Slice(addresses, func(i, j int) bool {
		if !addresses[i].CreatedAt.Equal(addresses[j].CreatedAt) {
			return addresses[i].CreatedAt.Before(addresses[j].CreatedAt)
		}
		return addresses[i].ID < addresses[j].ID
	})
	return addresses, nil
}

func (r *memoryAddressRepository) Update(_ context.Context, address *models.Address) error {
	return r.s.write(func(d *memoryData) error {
		stored, ok := d.addresses[address.ID]
		if !ok {
			return fmt.Errorf("address with ID %s: %w", address.ID, errs.ErrNotFound)
		}
		stored.Street = address.Street
		stored.City = address.City
		stored.Province = address.Province
		stored.Country = address.Country
		stored.PostalCode = address.PostalCode
		stored.UpdatedAt = time.Now()
		d.addresses[address.ID] = stored
		return nil
	})
}

func (r *memoryAddressRepository) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *memoryData) error {
		if _, ok := d.addresses[id]; !ok {
			return fmt.Errorf("address with ID %s: %w", id, errs.ErrNotFound)
		}
		delete(d.addresses, id)
		return nil
	})
}

func (r *memoryAddressRepository) DeleteByContact(_ context.Context, contactID string) error {
	return r.s.write(func(d *memoryData) error {
		for id, a := range d.addresses {
			if a.ContactID == contactID {
				delete(d.addresses, id)
			}
		}
		return nil
	})
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
