package ports

import (
	"context"
	"errors"

	"github.com/greenbasket/storefront-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email is already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")

// Repository persists buyer accounts, cart state included.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ReplaceCart overwrites the cart map in a single write; last write
	// wins when concurrent updates race.
	ReplaceCart(ctx context.Context, id string, items map[string]int64) error
}
