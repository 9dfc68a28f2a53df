package domain

import (
	"context"
	"errors"
	"fmt"
)

// TaxPercent is the flat tax applied to every order subtotal.
const TaxPercent = 10

// ErrInvalidReference signals a line item pointing at a product the
// catalog cannot resolve.
var ErrInvalidReference = errors.New("order references an unknown product")

// PriceLookup resolves the current charged price of a product in minor
// currency units. Queried fresh per item so the quote reflects catalog
// state at order time.
type PriceLookup interface {
	OfferPrice(ctx context.Context, productID string) (int64, error)
}

// Quote is the creation-time pricing snapshot. All values are minor
// currency units.
type Quote struct {
	Subtotal int64
	Tax      int64
	Amount   int64
	// UnitPrices holds the untaxed per-item price observed for each
	// line item, in input order. Used to build the checkout session.
	UnitPrices []int64
}

// PriceItems computes the authoritative order total: the sum of current
// catalog prices times quantities, plus a flat floored 10% tax.
// Integer division keeps the floor bit-reproducible.
func PriceItems(ctx context.Context, items []LineItem, prices PriceLookup) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, ErrEmptyOrder
	}
	quote := Quote{UnitPrices: make([]int64, 0, len(items))}
	for _, item := range items {
		if item.Quantity <= 0 {
			return Quote{}, ErrInvalidQuantity
		}
		price, err := prices.OfferPrice(ctx, item.ProductID)
		if err != nil {
			return Quote{}, fmt.Errorf("%w: %s", ErrInvalidReference, item.ProductID)
		}
		quote.UnitPrices = append(quote.UnitPrices, price)
		quote.Subtotal += price * item.Quantity
	}
	quote.Tax = quote.Subtotal * TaxPercent / 100
	quote.Amount = quote.Subtotal + quote.Tax
	return quote, nil
}
