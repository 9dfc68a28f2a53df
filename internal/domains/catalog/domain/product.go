package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName       = errors.New("product name is required")
	ErrEmptyCategory   = errors.New("product category is required")
	ErrInvalidPrice    = errors.New("product price must be greater than zero")
	ErrOfferAbovePrice = errors.New("offer price cannot exceed the list price")
)

// Product is a catalog entry. Prices are minor currency units; the
// offer price is what an order is charged.
type Product struct {
	ID          string
	Name        string
	Description []string
	Category    string
	Price       int64
	OfferPrice  int64
	Images      []string
	Weight      string
	InStock     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates and constructs a catalog entry. New products are
// in stock until a seller toggles them out.
func NewProduct(id, name string, description []string, category string, price, offerPrice int64, images []string, weight string) (*Product, error) {
	product := &Product{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: description,
		Category:    strings.TrimSpace(category),
		Price:       price,
		OfferPrice:  offerPrice,
		Images:      images,
		Weight:      strings.TrimSpace(weight),
		InStock:     true,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces catalog invariants.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Category == "" {
		return ErrEmptyCategory
	}
	if p.Price <= 0 || p.OfferPrice <= 0 {
		return ErrInvalidPrice
	}
	if p.OfferPrice > p.Price {
		return ErrOfferAbovePrice
	}
	return nil
}
