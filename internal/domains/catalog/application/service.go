package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/greenbasket/storefront-api/internal/domains/catalog/domain"
	"github.com/greenbasket/storefront-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

func (s *Service) AddProduct(ctx context.Context, input ports.AddProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(s.newID(), input.Name, input.Description, input.Category,
		input.Price, input.OfferPrice, input.Images, input.Weight)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ChangeStock(ctx context.Context, id string, inStock bool) error {
	return s.repo.SetStock(ctx, id, inStock)
}

// UpdateProduct patches display fields on an existing product. The
// stock flag is managed separately via ChangeStock.
func (s *Service) UpdateProduct(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = input.Name
	existing.Description = input.Description
	existing.Category = input.Category
	existing.Price = input.Price
	existing.OfferPrice = input.OfferPrice
	existing.Weight = input.Weight
	if err := existing.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, existing)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// OfferPrice resolves the current charged price for a product. It backs
// the order workflow's creation-time pricing snapshot.
func (s *Service) OfferPrice(ctx context.Context, productID string) (int64, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.OfferPrice, nil
}

var _ ports.Service = (*Service)(nil)
