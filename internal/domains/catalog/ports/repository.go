package ports

import (
	"context"
	"errors"

	"github.com/greenbasket/storefront-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists catalog products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	SetStock(ctx context.Context, id string, inStock bool) error
	Delete(ctx context.Context, id string) error
}
