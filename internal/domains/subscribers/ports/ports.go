package ports

import (
	"context"
	"errors"

	"github.com/greenbasket/storefront-api/internal/domains/subscribers/domain"
)

var ErrNotFound = errors.New("subscriber not found")
var ErrAlreadySubscribed = errors.New("email already subscribed")

// Repository persists newsletter subscribers.
type Repository interface {
	Save(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error)
	GetByID(ctx context.Context, id string) (*domain.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	List(ctx context.Context) ([]*domain.Subscriber, error)
	Delete(ctx context.Context, id string) error
}

// Service exposes newsletter use cases.
type Service interface {
	// Subscribe adds a new subscriber, or reactivates an inactive one.
	// The returned flag reports whether this was a reactivation.
	Subscribe(ctx context.Context, email string) (reactivated bool, err error)
	List(ctx context.Context) ([]*domain.Subscriber, error)
	Delete(ctx context.Context, id string) error
	// ToggleStatus flips the active flag and returns the new state.
	ToggleStatus(ctx context.Context, id string) (bool, error)
}
