// Package events defines the contact-book lifecycle events published after a
// write has been committed.
package events

import (
	"context"
	"time"
)

// Routing keys of the published events.
const (
	ContactCreated = "contact.created"
	ContactUpdated = "contact.updated"
	ContactDeleted = "contact.deleted"
	AddressCreated = "address.created"
	AddressUpdated = "address.updated"
	AddressDeleted = "address.deleted"
)

// Publisher delivers an event payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// ContactEvent is the payload of contact.* events.
type ContactEvent struct {
	ContactID  string    `json:"contactId"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AddressEvent is the payload of address.* events.
type AddressEvent struct {
	AddressID  string    `json:"addressId"`
	ContactID  string    `json:"contactId"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurredAt"`
}
