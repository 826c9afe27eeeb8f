package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"kontak/internal/errs"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrapsToKind(t *testing.T) {
	err := fmt.Errorf("resolve contact: %w", errs.NotFound("Contact is not found"))

	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.False(t, errors.Is(err, errs.ErrUnauthorized))
	assert.Equal(t, "Contact is not found", errs.Message(err, "fallback"))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", errs.Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "Unauthorized", errs.Message(errs.Unauthorized(), "fallback"))
}
