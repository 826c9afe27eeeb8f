package services_test

import (
	"context"
	"strings"
	"testing"

	"kontak/internal/errs"
	"kontak/internal/models"
	"kontak/internal/services"
	"kontak/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.users.Register(ctx, models.RegisterUserRequest{Username: "alice", Password: "secret", Name: "Alice"})
	require.NoError(t, err)

	stored, err := f.store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)
	assert.NotEqual(t, "secret", stored.Password)
	assert.True(t, f.hasher.Verify("secret", stored.Password))
	assert.Nil(t, stored.Token)

	// Test duplicate username
	err = f.users.Register(ctx, models.RegisterUserRequest{Username: "alice", Password: "other", Name: "Other"})
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, "Username is already registered", err.Error())

	// Test invalid request
	err = f.users.Register(ctx, models.RegisterUserRequest{Username: "bob"})
	require.ErrorIs(t, err, errs.ErrValidation)
	var verr *validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "alice")

	assert.Equal(t, models.UserResponse{Username: "alice", Name: "User alice"}, f.users.Get(user))

	// Name only
	resp, err := f.users.Update(ctx, user, models.UpdateUserRequest{Name: ptr("Alice Liddell")})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", resp.Name)
	assert.Equal(t, "Alice Liddell", user.Name)

	stored, err := f.store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, f.hasher.Verify("secret", stored.Password))

	// Password only; the session stays valid
	_, err = f.users.Update(ctx, user, models.UpdateUserRequest{Password: ptr("new-secret")})
	require.NoError(t, err)
	_, err = f.auth.Login(ctx, models.LoginUserRequest{Username: "alice", Password: "secret"})
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = f.auth.Login(ctx, models.LoginUserRequest{Username: "alice", Password: "new-secret"})
	assert.NoError(t, err)

	stored, err = f.store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", stored.Name)
}

func TestUserService_StalePrincipalsDoNotOverwriteEachOther(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "alice")

	// Two requests authenticated with the same token.
	first, err := f.auth.Authenticate(ctx, *user.Token)
	require.NoError(t, err)
	second, err := f.auth.Authenticate(ctx, *user.Token)
	require.NoError(t, err)

	_, err = f.users.Update(ctx, first, models.UpdateUserRequest{Password: ptr("newsecret")})
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, second))

	_, err = f.auth.Login(ctx, models.LoginUserRequest{Username: "alice", Password: "secret"})
	assert.ErrorIs(t, err, errs.ErrUnauthorized, "logout must not restore the old password")
	tok, err := f.auth.Login(ctx, models.LoginUserRequest{Username: "alice", Password: "newsecret"})
	require.NoError(t, err)

	// A profile update from a principal loaded before logout must not revive its token.
	stale, err := f.auth.Authenticate(ctx, tok.Token)
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, first))
	_, err = f.users.Update(ctx, stale, models.UpdateUserRequest{Name: ptr("Renamed")})
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, tok.Token)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	stored, err := f.store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, stored.Token)
	assert.Equal(t, "Renamed", stored.Name)
}

func TestUserService_RegisterLongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.users.Register(ctx, models.RegisterUserRequest{Username: "alice", Password: strings.Repeat("p", 80), Name: "Alice"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	exists, err := f.store.Users().ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBcryptHasher_RejectsOverlongPassword(t *testing.T) {
	hasher := services.NewBcryptHasher(4)

	_, err := hasher.Hash(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, "password must be at most 72 bytes", err.Error())

	digest, err := hasher.Hash(strings.Repeat("p", services.MaxPasswordBytes))
	require.NoError(t, err)
	assert.True(t, hasher.Verify(strings.Repeat("p", services.MaxPasswordBytes), digest))
}
