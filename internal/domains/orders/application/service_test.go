package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	ordersmemory "github.com/greenbasket/storefront-api/internal/domains/orders/adapters/memory"
	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

type staticPrices map[string]int64

func (p staticPrices) OfferPrice(_ context.Context, productID string) (int64, error) {
	price, ok := p[productID]
	if !ok {
		return 0, domain.ErrInvalidReference
	}
	return price, nil
}

// fakeGateway maps payment intents onto session metadata the way a real
// gateway recovers it from checkout sessions.
type fakeGateway struct {
	sessions   map[string]ports.SessionMetadata
	sessionErr error
	created    []ports.CheckoutRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]ports.SessionMetadata)}
}

func (g *fakeGateway) CreateSession(_ context.Context, req ports.CheckoutRequest) (string, error) {
	if g.sessionErr != nil {
		return "", g.sessionErr
	}
	g.created = append(g.created, req)
	return "https://checkout.test/session/" + req.OrderID, nil
}

func (g *fakeGateway) MetadataByPaymentIntent(_ context.Context, paymentIntentID string) (ports.SessionMetadata, error) {
	meta, ok := g.sessions[paymentIntentID]
	if !ok {
		return ports.SessionMetadata{}, ports.ErrSessionNotFound
	}
	return meta, nil
}

type fakeCarts struct {
	cleared []string
	err     error
}

func (c *fakeCarts) ClearCart(_ context.Context, userID string) error {
	if c.err != nil {
		return c.err
	}
	c.cleared = append(c.cleared, userID)
	return nil
}

var testAddress = domain.Address{Street: "1 Market St", City: "Springfield", Zipcode: "12345", Country: "US"}

func testInput() ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		UserID: "user-1",
		Items: []domain.LineItem{
			{ProductID: "potato", Quantity: 2},
			{ProductID: "onion", Quantity: 1},
		},
		Address: testAddress,
		Origin:  "https://shop.test",
	}
}

func newTestService(gateway ports.CheckoutGateway, carts ports.CartClearer) (*Service, ports.Repository) {
	repo := ordersmemory.NewRepository()
	counter := 0
	svc := NewService(repo, staticPrices{"potato": 100, "onion": 50}, gateway, carts,
		WithIDGenerator(func() string {
			counter++
			return fmt.Sprintf("order-%d", counter)
		}),
	)
	return svc, repo
}

func TestPlaceCODOrder_PricesAndPersists(t *testing.T) {
	svc, repo := newTestService(newFakeGateway(), &fakeCarts{})

	order, err := svc.PlaceCODOrder(context.Background(), testInput())
	require.NoError(t, err)
	require.Equal(t, int64(275), order.Amount)
	require.Equal(t, domain.PaymentCOD, order.PaymentType)
	require.False(t, order.IsPaid)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, order.Amount, stored.Amount)
}

func TestPlaceCODOrder_EmptyOrderWritesNothing(t *testing.T) {
	svc, repo := newTestService(newFakeGateway(), &fakeCarts{})

	input := testInput()
	input.Items = nil
	_, err := svc.PlaceCODOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)

	orders, err := repo.ListVisible(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPlaceCODOrder_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(newFakeGateway(), &fakeCarts{})

	input := testInput()
	input.Items = []domain.LineItem{{ProductID: "ghost", Quantity: 1}}
	_, err := svc.PlaceCODOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlaceOnlineOrder_ReturnsCheckoutURL(t *testing.T) {
	gateway := newFakeGateway()
	svc, _ := newTestService(gateway, &fakeCarts{})

	order, url, err := svc.PlaceOnlineOrder(context.Background(), testInput())
	require.NoError(t, err)
	require.Equal(t, "https://checkout.test/session/"+order.ID, url)

	require.Len(t, gateway.created, 1)
	req := gateway.created[0]
	require.Equal(t, order.ID, req.OrderID)
	require.Equal(t, "user-1", req.UserID)
	require.Equal(t, "https://shop.test/loader?next=my-orders", req.SuccessURL)
	require.Equal(t, "https://shop.test/cart", req.CancelURL)

	// Untaxed item lines plus one explicit tax line add up to the
	// stored order amount.
	var total int64
	for _, line := range req.Lines {
		total += line.UnitAmount * line.Quantity
	}
	require.Equal(t, order.Amount, total)
	require.Equal(t, "Tax", req.Lines[len(req.Lines)-1].Name)
	require.Equal(t, int64(25), req.Lines[len(req.Lines)-1].UnitAmount)
}

func TestPlaceOnlineOrder_SessionFailureKeepsOrder(t *testing.T) {
	gateway := newFakeGateway()
	gateway.sessionErr = errors.New("gateway down")
	svc, repo := newTestService(gateway, &fakeCarts{})

	order, url, err := svc.PlaceOnlineOrder(context.Background(), testInput())
	require.Error(t, err)
	require.Empty(t, url)
	require.NotNil(t, order)

	// The ledger write survives; the order stays unpaid and hidden.
	stored, getErr := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, getErr)
	require.False(t, stored.IsPaid)
	require.False(t, stored.Visible())
}

func placeOnlineOrder(t *testing.T, svc *Service, gateway *fakeGateway, intentID string) *domain.Order {
	t.Helper()
	order, _, err := svc.PlaceOnlineOrder(context.Background(), testInput())
	require.NoError(t, err)
	gateway.sessions[intentID] = ports.SessionMetadata{OrderID: order.ID, UserID: order.UserID}
	return order
}

func TestHandleGatewayEvent_SucceededMarksPaidAndClearsCart(t *testing.T) {
	gateway := newFakeGateway()
	carts := &fakeCarts{}
	svc, repo := newTestService(gateway, carts)
	order := placeOnlineOrder(t, svc, gateway, "pi_1")

	err := svc.HandleGatewayEvent(context.Background(), domain.GatewayEvent{
		Kind:            domain.EventPaymentSucceeded,
		PaymentIntentID: "pi_1",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, stored.IsPaid)
	require.True(t, stored.Visible())
	require.Equal(t, []string{"user-1"}, carts.cleared)
}

func TestHandleGatewayEvent_SucceededReplayIsIdempotent(t *testing.T) {
	gateway := newFakeGateway()
	svc, repo := newTestService(gateway, &fakeCarts{})
	order := placeOnlineOrder(t, svc, gateway, "pi_1")

	event := domain.GatewayEvent{Kind: domain.EventPaymentSucceeded, PaymentIntentID: "pi_1"}
	require.NoError(t, svc.HandleGatewayEvent(context.Background(), event))
	require.NoError(t, svc.HandleGatewayEvent(context.Background(), event))

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, stored.IsPaid)
}

func TestHandleGatewayEvent_FailedDeletesOrder(t *testing.T) {
	gateway := newFakeGateway()
	svc, repo := newTestService(gateway, &fakeCarts{})
	order := placeOnlineOrder(t, svc, gateway, "pi_1")

	event := domain.GatewayEvent{Kind: domain.EventPaymentFailed, PaymentIntentID: "pi_1"}
	require.NoError(t, svc.HandleGatewayEvent(context.Background(), event))

	_, err := repo.GetByID(context.Background(), order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	// Replaying the failure is acknowledged without error.
	require.NoError(t, svc.HandleGatewayEvent(context.Background(), event))
}

func TestHandleGatewayEvent_UnknownIntentIsNoOp(t *testing.T) {
	svc, _ := newTestService(newFakeGateway(), &fakeCarts{})

	err := svc.HandleGatewayEvent(context.Background(), domain.GatewayEvent{
		Kind:            domain.EventPaymentSucceeded,
		PaymentIntentID: "pi_unknown",
	})
	require.NoError(t, err)
}

func TestHandleGatewayEvent_UnhandledTypeIsNoOp(t *testing.T) {
	gateway := newFakeGateway()
	svc, repo := newTestService(gateway, &fakeCarts{})
	order := placeOnlineOrder(t, svc, gateway, "pi_1")

	err := svc.HandleGatewayEvent(context.Background(), domain.GatewayEvent{
		Kind: domain.EventUnhandled,
		Type: "charge.refunded",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.False(t, stored.IsPaid)
}

func TestOrdersVisibility(t *testing.T) {
	gateway := newFakeGateway()
	svc, _ := newTestService(gateway, &fakeCarts{})

	cod, err := svc.PlaceCODOrder(context.Background(), testInput())
	require.NoError(t, err)
	online := placeOnlineOrder(t, svc, gateway, "pi_1")

	visible, err := svc.OrdersForBuyer(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, cod.ID, visible[0].ID)

	event := domain.GatewayEvent{Kind: domain.EventPaymentSucceeded, PaymentIntentID: "pi_1"}
	require.NoError(t, svc.HandleGatewayEvent(context.Background(), event))

	visible, err = svc.OrdersForBuyer(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, visible, 2)

	ids := []string{visible[0].ID, visible[1].ID}
	require.Contains(t, ids, online.ID)
}

func TestSetPaymentStatus_OverridesAnyPaymentType(t *testing.T) {
	svc, repo := newTestService(newFakeGateway(), &fakeCarts{})

	cod, err := svc.PlaceCODOrder(context.Background(), testInput())
	require.NoError(t, err)

	require.NoError(t, svc.SetPaymentStatus(context.Background(), cod.ID, true))
	stored, err := repo.GetByID(context.Background(), cod.ID)
	require.NoError(t, err)
	require.True(t, stored.IsPaid)

	require.NoError(t, svc.SetPaymentStatus(context.Background(), cod.ID, false))
	stored, err = repo.GetByID(context.Background(), cod.ID)
	require.NoError(t, err)
	require.False(t, stored.IsPaid)

	require.ErrorIs(t, svc.SetPaymentStatus(context.Background(), "ghost", true), ports.ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	gateway := newFakeGateway()
	svc, _ := newTestService(gateway, &fakeCarts{})

	cod, err := svc.PlaceCODOrder(context.Background(), testInput())
	require.NoError(t, err)
	placeOnlineOrder(t, svc, gateway, "pi_1")
	event := domain.GatewayEvent{Kind: domain.EventPaymentSucceeded, PaymentIntentID: "pi_1"}
	require.NoError(t, svc.HandleGatewayEvent(context.Background(), event))

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalOrders)
	require.Equal(t, cod.Amount*2, stats.Revenue)
	require.Equal(t, int64(1), stats.PaidOrders)
	require.Equal(t, int64(1), stats.PendingOrders)
}
