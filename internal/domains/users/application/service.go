package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/greenbasket/storefront-api/internal/domains/users/domain"
	"github.com/greenbasket/storefront-api/internal/domains/users/ports"
)

// Service exposes buyer account use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	newID    func() string
}

func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions, newID: uuid.NewString}
}

// Register creates a buyer account and opens a session.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	user, err := domain.NewUser(s.newID(), name, email, password)
	if err != nil {
		return nil, "", err
	}
	if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, "", ports.ErrEmailTaken
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, "", err
	}
	token, err := s.openSession(ctx, saved.ID)
	if err != nil {
		return nil, "", err
	}
	return saved, token, nil
}

// Login authenticates a buyer and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, "", ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, "", ports.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.CheckPassword(password) {
		return nil, "", ports.ErrInvalidCredentials
	}
	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout drops the buyer's sessions.
func (s *Service) Logout(ctx context.Context, userID string) {
	if strings.TrimSpace(userID) == "" {
		return
	}
	_ = s.sessions.Delete(ctx, userID)
}

// GetByID loads a buyer account.
func (s *Service) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateCart replaces the buyer's cart state wholesale.
func (s *Service) UpdateCart(ctx context.Context, userID string, items map[string]int64) error {
	if items == nil {
		items = map[string]int64{}
	}
	return s.repo.ReplaceCart(ctx, userID, items)
}

// ClearCart empties the buyer's cart after their payment settles.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	return s.repo.ReplaceCart(ctx, userID, map[string]int64{})
}

func (s *Service) openSession(ctx context.Context, userID string) (string, error) {
	token, err := NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Save(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}

// NewSessionToken mints an opaque random session token.
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

var _ ports.Service = (*Service)(nil)
