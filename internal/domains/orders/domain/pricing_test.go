package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticPrices map[string]int64

func (p staticPrices) OfferPrice(_ context.Context, productID string) (int64, error) {
	price, ok := p[productID]
	if !ok {
		return 0, ErrInvalidReference
	}
	return price, nil
}

func TestPriceItems_FlooredTax(t *testing.T) {
	prices := staticPrices{"potato": 100, "onion": 50}
	items := []LineItem{
		{ProductID: "potato", Quantity: 2},
		{ProductID: "onion", Quantity: 1},
	}

	quote, err := PriceItems(context.Background(), items, prices)
	require.NoError(t, err)
	require.Equal(t, int64(250), quote.Subtotal)
	require.Equal(t, int64(25), quote.Tax)
	require.Equal(t, int64(275), quote.Amount)
	require.Equal(t, []int64{100, 50}, quote.UnitPrices)
}

func TestPriceItems_TaxFloorsFractionalMinorUnits(t *testing.T) {
	prices := staticPrices{"gum": 33}

	quote, err := PriceItems(context.Background(), []LineItem{{ProductID: "gum", Quantity: 1}}, prices)
	require.NoError(t, err)
	require.Equal(t, int64(33), quote.Subtotal)
	// 10% of 33 is 3.3, floored to 3.
	require.Equal(t, int64(3), quote.Tax)
	require.Equal(t, int64(36), quote.Amount)
}

func TestPriceItems_OrderIndependent(t *testing.T) {
	prices := staticPrices{"potato": 100, "onion": 50, "gum": 33}
	forward := []LineItem{
		{ProductID: "potato", Quantity: 2},
		{ProductID: "onion", Quantity: 1},
		{ProductID: "gum", Quantity: 3},
	}
	reversed := []LineItem{forward[2], forward[1], forward[0]}

	a, err := PriceItems(context.Background(), forward, prices)
	require.NoError(t, err)
	b, err := PriceItems(context.Background(), reversed, prices)
	require.NoError(t, err)
	require.Equal(t, a.Amount, b.Amount)
	require.Equal(t, a.Tax, b.Tax)
}

func TestPriceItems_UnknownProduct(t *testing.T) {
	prices := staticPrices{"potato": 100}

	_, err := PriceItems(context.Background(), []LineItem{{ProductID: "ghost", Quantity: 1}}, prices)
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestPriceItems_InvalidQuantity(t *testing.T) {
	prices := staticPrices{"potato": 100}

	for _, quantity := range []int64{0, -1} {
		_, err := PriceItems(context.Background(), []LineItem{{ProductID: "potato", Quantity: quantity}}, prices)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}
}
