package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

// Service orchestrates the order workflow: creation, pricing, checkout
// session hand-off, webhook reconciliation and queries.
type Service struct {
	repo     ports.Repository
	prices   domain.PriceLookup
	gateway  ports.CheckoutGateway
	carts    ports.CartClearer
	logger   *slog.Logger
	newID    func() string
	currency string
}

type Option func(*Service)

// WithLogger injects the logger used for reconciliation no-op audit lines.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides order id generation for deterministic tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithCurrency sets the checkout session currency. Defaults to usd.
func WithCurrency(currency string) Option {
	return func(s *Service) {
		if currency != "" {
			s.currency = currency
		}
	}
}

func NewService(repo ports.Repository, prices domain.PriceLookup, gateway ports.CheckoutGateway, carts ports.CartClearer, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		prices:   prices,
		gateway:  gateway,
		carts:    carts,
		logger:   slog.Default(),
		newID:    uuid.NewString,
		currency: "usd",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceCODOrder validates, prices and persists a cash-on-delivery order.
func (s *Service) PlaceCODOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	order, _, err := s.createOrder(ctx, input, domain.PaymentCOD)
	return order, err
}

// PlaceOnlineOrder persists the order, then requests a hosted checkout
// session and returns its redirect URL. The ledger write is the durable
// source of truth: a session failure after the write leaves the order
// unpaid and unreconciled for the webhook or an operator to resolve.
func (s *Service) PlaceOnlineOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, string, error) {
	order, quote, err := s.createOrder(ctx, input, domain.PaymentOnline)
	if err != nil {
		return nil, "", err
	}
	url, err := s.gateway.CreateSession(ctx, s.checkoutRequest(order, quote, input.Origin))
	if err != nil {
		return order, "", fmt.Errorf("create checkout session for order %s: %w", order.ID, err)
	}
	return order, url, nil
}

func (s *Service) createOrder(ctx context.Context, input ports.PlaceOrderInput, paymentType domain.PaymentType) (*domain.Order, domain.Quote, error) {
	quote, err := domain.PriceItems(ctx, input.Items, s.prices)
	if err != nil {
		return nil, domain.Quote{}, mapError(err)
	}
	order, err := domain.NewOrder(s.newID(), input.UserID, input.Items, input.Address, quote.Amount, paymentType)
	if err != nil {
		return nil, domain.Quote{}, mapError(err)
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, domain.Quote{}, err
	}
	return saved, quote, nil
}

// checkoutRequest builds the hosted payment page lines. Items are
// listed at their untaxed catalog price with the tax as an explicit
// final line, so the gateway-displayed total always equals the stored
// order amount.
func (s *Service) checkoutRequest(order *domain.Order, quote domain.Quote, origin string) ports.CheckoutRequest {
	lines := make([]ports.CheckoutLine, 0, len(order.Items)+1)
	for i, item := range order.Items {
		lines = append(lines, ports.CheckoutLine{
			Name:       item.ProductID,
			UnitAmount: quote.UnitPrices[i],
			Quantity:   item.Quantity,
		})
	}
	if tax := order.Amount - quote.Subtotal; tax > 0 {
		lines = append(lines, ports.CheckoutLine{Name: "Tax", UnitAmount: tax, Quantity: 1})
	}
	return ports.CheckoutRequest{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Currency:   s.currency,
		Lines:      lines,
		SuccessURL: origin + "/loader?next=my-orders",
		CancelURL:  origin + "/cart",
	}
}

// HandleGatewayEvent reconciles a verified gateway event against the
// ledger. Lookup misses are logged and acknowledged, never surfaced as
// errors, since the gateway retries deliveries and replays must be
// idempotent.
func (s *Service) HandleGatewayEvent(ctx context.Context, event domain.GatewayEvent) error {
	switch event.Kind {
	case domain.EventPaymentSucceeded, domain.EventPaymentFailed:
	case domain.EventUnhandled:
		s.logger.Warn("unhandled gateway event type", slog.String("event.type", event.Type))
		return nil
	default:
		s.logger.Warn("unknown gateway event kind", slog.String("event.kind", string(event.Kind)))
		return nil
	}

	meta, err := s.gateway.MetadataByPaymentIntent(ctx, event.PaymentIntentID)
	if err != nil {
		if isNoOp(err) {
			s.logger.Warn("gateway event references unknown payment intent",
				slog.String("payment_intent.id", event.PaymentIntentID))
			return nil
		}
		return fmt.Errorf("resolve payment intent %s: %w", event.PaymentIntentID, err)
	}
	if meta.OrderID == "" {
		s.logger.Warn("checkout session carries no order metadata",
			slog.String("payment_intent.id", event.PaymentIntentID))
		return nil
	}

	switch event.Kind {
	case domain.EventPaymentSucceeded:
		return s.settleOrder(ctx, meta)
	default:
		return s.discardOrder(ctx, meta)
	}
}

func (s *Service) settleOrder(ctx context.Context, meta ports.SessionMetadata) error {
	if err := s.repo.SetPaid(ctx, meta.OrderID, true); err != nil {
		if isNoOp(err) {
			s.logger.Warn("payment succeeded for unknown order", slog.String("order.id", meta.OrderID))
			return nil
		}
		return fmt.Errorf("mark order %s paid: %w", meta.OrderID, err)
	}
	if s.carts != nil && meta.UserID != "" {
		if err := s.carts.ClearCart(ctx, meta.UserID); err != nil {
			s.logger.Warn("failed to clear buyer cart after payment",
				slog.String("user.id", meta.UserID), slog.String("error", err.Error()))
		}
	}
	return nil
}

// discardOrder removes the order a failed payment belongs to; a failed
// online payment must not leave a phantom unpaid order behind.
func (s *Service) discardOrder(ctx context.Context, meta ports.SessionMetadata) error {
	if err := s.repo.Delete(ctx, meta.OrderID); err != nil {
		if isNoOp(err) {
			s.logger.Warn("payment failed for unknown order", slog.String("order.id", meta.OrderID))
			return nil
		}
		return fmt.Errorf("delete order %s: %w", meta.OrderID, err)
	}
	return nil
}

// OrdersForBuyer lists the buyer's settled orders, newest first.
func (s *Service) OrdersForBuyer(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListVisibleByUser(ctx, userID)
}

// AllOrders lists every settled order for the seller view, newest first.
func (s *Service) AllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListVisible(ctx)
}

// SetPaymentStatus is the operator escape hatch: it overwrites the paid
// flag without consulting the gateway, for any payment method.
func (s *Service) SetPaymentStatus(ctx context.Context, orderID string, isPaid bool) error {
	return s.repo.SetPaid(ctx, orderID, isPaid)
}

// DashboardStats aggregates the seller dashboard figures by iterating
// the visible order list.
func (s *Service) DashboardStats(ctx context.Context) (ports.Stats, error) {
	orders, err := s.repo.ListVisible(ctx)
	if err != nil {
		return ports.Stats{}, err
	}
	var stats ports.Stats
	for _, order := range orders {
		stats.TotalOrders++
		stats.Revenue += order.Amount
		if order.IsPaid {
			stats.PaidOrders++
		} else {
			stats.PendingOrders++
		}
	}
	return stats, nil
}

var _ ports.Service = (*Service)(nil)
