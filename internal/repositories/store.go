package repositories

import "context"

// Store gives access to the repositories of one datastore. Repositories
// obtained from the tx argument of Transaction share that transaction.
type Store interface {
	Users() UserRepository
	Contacts() ContactRepository
	Addresses() AddressRepository

	// Transaction runs fn atomically: either every write made through tx is
	// committed or none is. An error returned by fn rolls back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
