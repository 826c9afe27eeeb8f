// Package errs holds the error kinds shared by repositories, services and handlers.
package errs

import "errors"

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	// ErrUnauthorized covers a missing, unknown or expired token and bad login credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned both for missing entities and for entities owned by another user.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a unique constraint violation such as a taken username.
	ErrConflict = errors.New("conflict")
)

// Error pairs an error kind with the message returned to the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// New returns an *Error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Unauthorized returns the single message used for every authentication failure.
func Unauthorized() *Error {
	return New(ErrUnauthorized, "Unauthorized")
}

// NotFound returns a not-found error with the given message.
func NotFound(message string) *Error {
	return New(ErrNotFound, message)
}

// Message returns the client-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}
