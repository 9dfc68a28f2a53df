package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	usersmemory "github.com/greenbasket/storefront-api/internal/domains/users/adapters/memory"
	"github.com/greenbasket/storefront-api/internal/domains/users/domain"
	"github.com/greenbasket/storefront-api/internal/domains/users/ports"
)

func newTestService() (*Service, *usersmemory.SessionStore) {
	sessions := usersmemory.NewSessionStore()
	return NewService(usersmemory.NewRepository(), sessions), sessions
}

func TestRegister_OpensSession(t *testing.T) {
	svc, sessions := newTestService()

	user, token, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "ada@example.com", user.Email)
	require.Empty(t, user.CartItems)

	subject, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Other", "ada@example.com", "different1")
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "short")
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "ADA@example.com", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "ada@example.com", user.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newTestService()
	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ada@example.com", "wrongpass1")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "ghost@example.com", "supersecret")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogout_DropsSession(t *testing.T) {
	svc, sessions := newTestService()
	user, token, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)

	svc.Logout(context.Background(), user.ID)
	_, err = sessions.Resolve(context.Background(), token)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateCart_ReplacesWholesale(t *testing.T) {
	svc, _ := newTestService()
	user, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateCart(context.Background(), user.ID, map[string]int64{"potato": 2}))
	stored, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"potato": 2}, stored.CartItems)

	// A later write replaces the whole cart, it does not merge.
	require.NoError(t, svc.UpdateCart(context.Background(), user.ID, map[string]int64{"onion": 1}))
	stored, err = svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"onion": 1}, stored.CartItems)
}

func TestClearCart(t *testing.T) {
	svc, _ := newTestService()
	user, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateCart(context.Background(), user.ID, map[string]int64{"potato": 2}))
	require.NoError(t, svc.ClearCart(context.Background(), user.ID))

	stored, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, stored.CartItems)
}
