package services_test

import (
	"context"
	"testing"
	"time"

	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/services"
	"kontak/internal/validation"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func ptr(s string) *string { return &s }

// clock is a settable time source for token expiry tests.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type fixture struct {
	store     *repositories.InMemoryStore
	hasher    services.PasswordHasher
	validator *validation.Validator
	logger    *zap.Logger
	clock     *clock
	auth      *services.AuthService
	users     *services.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:     repositories.NewInMemoryStore(),
		hasher:    services.NewBcryptHasher(bcrypt.MinCost),
		validator: validation.New(),
		logger:    zap.NewNop(),
		clock:     &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.auth = services.NewAuthService(f.store, f.hasher, f.validator, f.logger, services.WithClock(f.clock.Now))
	f.users = services.NewUserService(f.store, f.hasher, f.validator, f.logger)
	return f
}

// register creates a user and returns it as the authenticated principal.
func (f *fixture) register(t *testing.T, username string) *models.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.users.Register(ctx, models.RegisterUserRequest{
		Username: username,
		Password: "secret",
		Name:     "User " + username,
	}))
	tok, err := f.auth.Login(ctx, models.LoginUserRequest{Username: username, Password: "secret"})
	require.NoError(t, err)
	user, err := f.auth.Authenticate(ctx, tok.Token)
	require.NoError(t, err)
	return user
}
