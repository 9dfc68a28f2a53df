package memory

import (
	"context"
	"sync"

	"github.com/greenbasket/storefront-api/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	mu       sync.RWMutex
	bySubj   map[string]string
	subjects map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{bySubj: map[string]string{}, subjects: map[string]string{}}
}

func (s *SessionStore) Save(_ context.Context, subject, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.bySubj[subject]; ok {
		delete(s.subjects, old)
	}
	s.bySubj[subject] = token
	s.subjects[token] = subject
	return nil
}

func (s *SessionStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subject, ok := s.subjects[token]
	if !ok {
		return "", ports.ErrNotFound
	}
	return subject, nil
}

func (s *SessionStore) Delete(_ context.Context, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.bySubj[subject]; ok {
		delete(s.subjects, token)
		delete(s.bySubj, subject)
	}
	return nil
}
