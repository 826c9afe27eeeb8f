package repositories

import (
	"context"

	"gorm.io/gorm"
)

// GORMStore is a Store backed by a GORM database handle.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Users() UserRepository { return NewGORMUserRepository(s.db) }

func (s *GORMStore) Contacts() ContactRepository { return NewGORMContactRepository(s.db) }

func (s *GORMStore) Addresses() AddressRepository { return NewGORMAddressRepository(s.db) }

// Transaction runs fn inside a database transaction.
func (s *GORMStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMStore(tx))
	})
}
