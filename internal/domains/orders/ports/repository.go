package ports

import (
	"context"
	"errors"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository is the order ledger. The visible listings apply the
// settled filter (COD or paid) and sort by creation time descending.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// SetPaid overwrites the paid flag. Idempotent: replaying the same
	// value leaves the row unchanged.
	SetPaid(ctx context.Context, id string, paid bool) error
	Delete(ctx context.Context, id string) error
	ListVisibleByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListVisible(ctx context.Context) ([]*domain.Order, error)
}
