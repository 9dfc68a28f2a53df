package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	usersmemory "github.com/greenbasket/storefront-api/internal/domains/users/adapters/memory"
)

func TestLogin_Success(t *testing.T) {
	svc := NewService("seller@example.com", "sellerpass", usersmemory.NewSessionStore())

	token, err := svc.Login(context.Background(), "Seller@Example.com", "sellerpass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, svc.Verify(context.Background(), token))
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := NewService("seller@example.com", "sellerpass", usersmemory.NewSessionStore())

	_, err := svc.Login(context.Background(), "seller@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "other@example.com", "sellerpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnconfiguredCredentials(t *testing.T) {
	svc := NewService("", "", usersmemory.NewSessionStore())

	_, err := svc.Login(context.Background(), "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_UnknownToken(t *testing.T) {
	svc := NewService("seller@example.com", "sellerpass", usersmemory.NewSessionStore())

	require.False(t, svc.Verify(context.Background(), "bogus"))
}

func TestLogout_DropsSession(t *testing.T) {
	svc := NewService("seller@example.com", "sellerpass", usersmemory.NewSessionStore())

	token, err := svc.Login(context.Background(), "seller@example.com", "sellerpass")
	require.NoError(t, err)

	svc.Logout(context.Background())
	require.False(t, svc.Verify(context.Background(), token))
}
