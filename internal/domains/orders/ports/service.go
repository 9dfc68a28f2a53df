package ports

import (
	"context"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
)

// PlaceOrderInput carries the buyer-supplied order request. The buyer
// identity is passed explicitly, never pulled from ambient state.
type PlaceOrderInput struct {
	UserID  string
	Items   []domain.LineItem
	Address domain.Address
	// Origin is the storefront base URL used for checkout redirect
	// targets on the online path.
	Origin string
}

// Stats aggregates the seller dashboard figures over visible orders.
// Revenue is minor currency units.
type Stats struct {
	TotalOrders   int64
	Revenue       int64
	PaidOrders    int64
	PendingOrders int64
}

// CartClearer resets a buyer's in-progress cart once their payment
// settles and the cart has become an order.
type CartClearer interface {
	ClearCart(ctx context.Context, userID string) error
}

// Service exposes the order workflow use cases.
type Service interface {
	PlaceCODOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	// PlaceOnlineOrder persists the order and returns the gateway
	// redirect URL for the hosted checkout flow.
	PlaceOnlineOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, string, error)
	// HandleGatewayEvent reconciles a verified payment event against
	// the ledger. Unknown intents and unhandled kinds are no-ops.
	HandleGatewayEvent(ctx context.Context, event domain.GatewayEvent) error
	OrdersForBuyer(ctx context.Context, userID string) ([]*domain.Order, error)
	AllOrders(ctx context.Context) ([]*domain.Order, error)
	SetPaymentStatus(ctx context.Context, orderID string, isPaid bool) error
	DashboardStats(ctx context.Context) (Stats, error)
}
