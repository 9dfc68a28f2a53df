package mapper

import (
	"time"

	ordersdomain "github.com/greenbasket/storefront-api/internal/domains/orders/domain"
)

// LineItem is the transport shape of one order line.
type LineItem struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

// Order is the transport representation of a ledger entry.
type Order struct {
	ID          string                `json:"_id"`
	UserID      string                `json:"userId"`
	Items       []LineItem            `json:"items"`
	Address     ordersdomain.Address  `json:"address"`
	Amount      int64                 `json:"amount"`
	PaymentType string                `json:"paymentType"`
	IsPaid      bool                  `json:"isPaid"`
	Status      string                `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ToDomainItems converts transport line items to domain line items.
func ToDomainItems(items []LineItem) []ordersdomain.LineItem {
	converted := make([]ordersdomain.LineItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, ordersdomain.LineItem{
			ProductID: item.Product,
			Quantity:  item.Quantity,
		})
	}
	return converted
}

// FromDomainOrder converts a domain order to its transport shape.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItem{Product: item.ProductID, Quantity: item.Quantity})
	}
	return Order{
		ID:          order.ID,
		UserID:      order.UserID,
		Items:       items,
		Address:     order.Address,
		Amount:      order.Amount,
		PaymentType: string(order.PaymentType),
		IsPaid:      order.IsPaid,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// FromDomainOrders converts a list of domain orders.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	converted := make([]Order, 0, len(orders))
	for _, order := range orders {
		converted = append(converted, FromDomainOrder(order))
	}
	return converted
}
