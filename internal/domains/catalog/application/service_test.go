package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/greenbasket/storefront-api/internal/domains/catalog/adapters/memory"
	"github.com/greenbasket/storefront-api/internal/domains/catalog/ports"
)

func addInput() ports.AddProductInput {
	return ports.AddProductInput{
		Name:        "Potato 500g",
		Description: []string{"Fresh and organic"},
		Category:    "Vegetables",
		Price:       120,
		OfferPrice:  100,
		Images:      []string{"https://cdn.test/potato.png"},
		Weight:      "500g",
	}
}

func TestAddProduct_Success(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())

	product, err := svc.AddProduct(context.Background(), addInput())
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	require.True(t, product.InStock)

	fetched, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, "Potato 500g", fetched.Name)
}

func TestAddProduct_OfferAbovePrice(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())

	input := addInput()
	input.OfferPrice = 150
	_, err := svc.AddProduct(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestChangeStock(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	product, err := svc.AddProduct(context.Background(), addInput())
	require.NoError(t, err)

	require.NoError(t, svc.ChangeStock(context.Background(), product.ID, false))
	fetched, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.False(t, fetched.InStock)

	require.ErrorIs(t, svc.ChangeStock(context.Background(), "ghost", false), ports.ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	product, err := svc.AddProduct(context.Background(), addInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), ports.UpdateProductInput{
		ID:          product.ID,
		Name:        "Potato 1kg",
		Description: []string{"Bigger bag"},
		Category:    "Vegetables",
		Price:       220,
		OfferPrice:  200,
		Weight:      "1kg",
	})
	require.NoError(t, err)
	require.Equal(t, "Potato 1kg", updated.Name)
	require.Equal(t, int64(200), updated.OfferPrice)
}

func TestDeleteProduct(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	product, err := svc.AddProduct(context.Background(), addInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID))
	_, err = svc.GetProduct(context.Background(), product.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestOfferPrice(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	product, err := svc.AddProduct(context.Background(), addInput())
	require.NoError(t, err)

	price, err := svc.OfferPrice(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), price)

	_, err = svc.OfferPrice(context.Background(), "ghost")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListProducts(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	_, err := svc.AddProduct(context.Background(), addInput())
	require.NoError(t, err)

	input := addInput()
	input.Name = "Onion 500g"
	_, err = svc.AddProduct(context.Background(), input)
	require.NoError(t, err)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
}
