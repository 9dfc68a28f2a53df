// Package application implements seller back-office authentication.
// There is a single seller principal whose credentials come from
// configuration, not from a user store.
package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	userapp "github.com/greenbasket/storefront-api/internal/domains/users/application"
	userports "github.com/greenbasket/storefront-api/internal/domains/users/ports"
)

// Principal is the session subject shared by all seller sessions.
const Principal = "seller"

var ErrInvalidCredentials = errors.New("invalid seller credentials")

// Service authenticates the configured seller and manages its sessions.
type Service struct {
	email    string
	password string
	sessions userports.SessionStore
}

func NewService(email, password string, sessions userports.SessionStore) *Service {
	if sessions == nil {
		sessions = userports.NoopSessionStore
	}
	return &Service{
		email:    strings.ToLower(strings.TrimSpace(email)),
		password: password,
		sessions: sessions,
	}
}

// Login checks the configured credentials and opens a seller session.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if s.email == "" || s.password == "" {
		return "", ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !emailOK || !passwordOK {
		return "", ErrInvalidCredentials
	}
	token, err := userapp.NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Save(ctx, Principal, token); err != nil {
		return "", err
	}
	return token, nil
}

// Verify reports whether the token belongs to a live seller session.
func (s *Service) Verify(ctx context.Context, token string) bool {
	subject, err := s.sessions.Resolve(ctx, token)
	return err == nil && subject == Principal
}

// Logout drops the seller session.
func (s *Service) Logout(ctx context.Context) {
	_ = s.sessions.Delete(ctx, Principal)
}
