package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/greenbasket/storefront-api/internal/domains/users/domain"
	"github.com/greenbasket/storefront-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory buyer store for development and tests.
type Repository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}, byEmail: map[string]string{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := cloneUser(user)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[clone.Email]; ok && existingID != clone.ID {
		return nil, ports.ErrEmailTaken
	}
	r.users[clone.ID] = clone
	r.byEmail[clone.Email] = clone.ID
	return cloneUser(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *Repository) ReplaceCart(_ context.Context, id string, items map[string]int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ports.ErrNotFound
	}
	user.ReplaceCart(cloneCart(items))
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func cloneUser(user *domain.User) *domain.User {
	clone := *user
	clone.CartItems = cloneCart(user.CartItems)
	return &clone
}

func cloneCart(items map[string]int64) map[string]int64 {
	cloned := make(map[string]int64, len(items))
	for k, v := range items {
		cloned[k] = v
	}
	return cloned
}
