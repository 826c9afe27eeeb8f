package services

import (
	"errors"
	"fmt"

	"kontak/internal/errs"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordHasher hashes passwords and verifies them against stored digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// BcryptHasher is the bcrypt implementation of PasswordHasher.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost.
func NewBcryptHasher(cost int) BcryptHasher {
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.New(errs.ErrValidation, fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func (h BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
