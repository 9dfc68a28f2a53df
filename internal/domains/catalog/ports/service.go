package ports

import (
	"context"

	"github.com/greenbasket/storefront-api/internal/domains/catalog/domain"
)

// AddProductInput carries the seller-supplied product fields. Prices
// are minor currency units; image URLs are stored as given.
type AddProductInput struct {
	Name        string
	Description []string
	Category    string
	Price       int64
	OfferPrice  int64
	Images      []string
	Weight      string
}

// UpdateProductInput patches an existing product's display fields.
type UpdateProductInput struct {
	ID          string
	Name        string
	Description []string
	Category    string
	Price       int64
	OfferPrice  int64
	Weight      string
}

// Service exposes catalog use cases. OfferPrice doubles as the order
// workflow's price lookup.
type Service interface {
	AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ChangeStock(ctx context.Context, id string, inStock bool) error
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	OfferPrice(ctx context.Context, productID string) (int64, error)
}
