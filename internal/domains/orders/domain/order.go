package domain

import (
	"errors"
	"strings"
	"time"
)

// PaymentType selects how an order is settled.
type PaymentType string

const (
	PaymentCOD    PaymentType = "COD"
	PaymentOnline PaymentType = "Online"
)

// DefaultStatus is the fulfillment status assigned at creation.
const DefaultStatus = "Processing"

var (
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrMissingAddress     = errors.New("shipping address is required")
	ErrMissingBuyer       = errors.New("buyer id is required")
	ErrInvalidQuantity    = errors.New("item quantity must be greater than zero")
	ErrInvalidPaymentType = errors.New("payment type is invalid")
)

// LineItem references a catalog product and the quantity purchased.
// The item does not carry a price: the authoritative amount is computed
// once at creation and stored on the order.
type LineItem struct {
	ProductID string `json:"product"`
	Quantity  int64  `json:"quantity"`
}

// Address is the shipping snapshot denormalized onto the order. Later
// edits to the buyer's saved addresses never touch past orders.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// Empty reports whether no address field was supplied.
func (a Address) Empty() bool {
	return strings.TrimSpace(a.Street) == "" && strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.Country) == "" && strings.TrimSpace(a.Zipcode) == ""
}

// Order is the ledger aggregate for one purchase. Amount is stored in
// minor currency units and is never recomputed from line items after
// creation.
type Order struct {
	ID          string
	UserID      string
	Items       []LineItem
	Address     Address
	Amount      int64
	PaymentType PaymentType
	IsPaid      bool
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder builds an order aggregate with creation-time invariants
// applied. Amount must be the already-computed total from Quote.
func NewOrder(id, userID string, items []LineItem, address Address, amount int64, paymentType PaymentType) (*Order, error) {
	order := &Order{
		ID:          id,
		UserID:      strings.TrimSpace(userID),
		Items:       items,
		Address:     address,
		Amount:      amount,
		PaymentType: paymentType,
		Status:      DefaultStatus,
		CreatedAt:   time.Now().UTC(),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces the creation invariants on the aggregate.
func (o *Order) Validate() error {
	if o.UserID == "" {
		return ErrMissingBuyer
	}
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if o.Address.Empty() {
		return ErrMissingAddress
	}
	switch o.PaymentType {
	case PaymentCOD, PaymentOnline:
	default:
		return ErrInvalidPaymentType
	}
	return nil
}

// Visible reports whether the order is settled enough to appear in
// buyer and seller order history: COD orders always, online orders only
// once the gateway has confirmed payment.
func (o *Order) Visible() bool {
	return o.PaymentType == PaymentCOD || o.IsPaid
}
