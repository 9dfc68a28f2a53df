package ports

import (
	"context"

	"github.com/greenbasket/storefront-api/internal/domains/users/domain"
)

// Service exposes buyer account use cases.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, userID string)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateCart(ctx context.Context, userID string, items map[string]int64) error
	// ClearCart empties the buyer's cart; invoked by payment
	// reconciliation once the cart has become a settled order.
	ClearCart(ctx context.Context, userID string) error
}
