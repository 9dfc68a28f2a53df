package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/greenbasket/storefront-api/internal/domains/subscribers/domain"
	"github.com/greenbasket/storefront-api/internal/domains/subscribers/ports"
)

// Repository is an in-memory subscriber store used for tests and for
// running without a database.
type Repository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Subscriber
}

func NewRepository() *Repository {
	return &Repository{byID: make(map[string]*domain.Subscriber)}
}

func (r *Repository) Save(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *subscriber
	now := time.Now().UTC()
	if existing, ok := r.byID[stored.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscriber, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := *subscriber
	return &out, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, subscriber := range r.byID {
		if subscriber.Email == email {
			out := *subscriber
			return &out, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(ctx context.Context) ([]*domain.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscribers := make([]*domain.Subscriber, 0, len(r.byID))
	for _, subscriber := range r.byID {
		out := *subscriber
		subscribers = append(subscribers, &out)
	}
	sort.Slice(subscribers, func(i, j int) bool {
		return subscribers[i].CreatedAt.After(subscribers[j].CreatedAt)
	})
	return subscribers, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var _ ports.Repository = (*Repository)(nil)
