package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

const tracerName = "github.com/greenbasket/storefront-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order workflow with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create workflow metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core workflow service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// PlaceCODOrder persists a cash-on-delivery order with instrumentation.
func (s *Service) PlaceCODOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceCODOrder",
		attribute.String("order.user_id", input.UserID),
		attribute.Int("order.item_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "placing COD order", slog.String("user.id", input.UserID))
	order, err := s.inner.PlaceCODOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place COD order", slog.String("user.id", input.UserID))
	}
	s.metrics.recordPlaced(ctx, order.PaymentType)
	span.SetAttributes(attribute.Int64("order.amount", order.Amount))
	s.logInfo(ctx, "COD order placed", slog.String("order.id", order.ID), slog.Int64("order.amount", order.Amount))
	return order, nil
}

// PlaceOnlineOrder persists an online order and opens a checkout session.
func (s *Service) PlaceOnlineOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, string, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOnlineOrder",
		attribute.String("order.user_id", input.UserID),
		attribute.Int("order.item_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "placing online order", slog.String("user.id", input.UserID))
	order, url, err := s.inner.PlaceOnlineOrder(ctx, input)
	if err != nil {
		attrs := []slog.Attr{slog.String("user.id", input.UserID)}
		if order != nil {
			// The ledger write succeeded but the checkout session did
			// not; the order stays behind for later reconciliation.
			attrs = append(attrs, slog.String("order.id", order.ID))
		}
		return order, "", s.handleError(ctx, span, err, "failed to place online order", attrs...)
	}
	s.metrics.recordPlaced(ctx, order.PaymentType)
	span.SetAttributes(attribute.Int64("order.amount", order.Amount))
	s.logInfo(ctx, "online order placed", slog.String("order.id", order.ID), slog.Int64("order.amount", order.Amount))
	return order, url, nil
}

// HandleGatewayEvent reconciles a verified payment event.
func (s *Service) HandleGatewayEvent(ctx context.Context, event domain.GatewayEvent) error {
	ctx, span := s.startSpan(ctx, "Service.HandleGatewayEvent",
		attribute.String("event.kind", string(event.Kind)),
		attribute.String("payment_intent.id", event.PaymentIntentID),
	)
	defer span.End()

	s.logInfo(ctx, "reconciling gateway event", slog.String("event.kind", string(event.Kind)))
	if err := s.inner.HandleGatewayEvent(ctx, event); err != nil {
		return s.handleError(ctx, span, err, "failed to reconcile gateway event",
			slog.String("event.kind", string(event.Kind)))
	}
	s.metrics.recordReconciled(ctx, event.Kind)
	return nil
}

// OrdersForBuyer lists the buyer's settled orders.
func (s *Service) OrdersForBuyer(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.OrdersForBuyer", attribute.String("order.user_id", userID))
	defer span.End()

	orders, err := s.inner.OrdersForBuyer(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list buyer orders", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(orders)))
	return orders, nil
}

// AllOrders lists every settled order.
func (s *Service) AllOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.AllOrders")
	defer span.End()

	orders, err := s.inner.AllOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(orders)))
	return orders, nil
}

// SetPaymentStatus applies the operator override.
func (s *Service) SetPaymentStatus(ctx context.Context, orderID string, isPaid bool) error {
	ctx, span := s.startSpan(ctx, "Service.SetPaymentStatus",
		attribute.String("order.id", orderID),
		attribute.Bool("order.is_paid", isPaid),
	)
	defer span.End()

	s.logInfo(ctx, "overriding payment status", slog.String("order.id", orderID), slog.Bool("is_paid", isPaid))
	if err := s.inner.SetPaymentStatus(ctx, orderID, isPaid); err != nil {
		return s.handleError(ctx, span, err, "failed to override payment status", slog.String("order.id", orderID))
	}
	s.metrics.recordOverride(ctx, isPaid)
	return nil
}

// DashboardStats aggregates seller dashboard figures.
func (s *Service) DashboardStats(ctx context.Context) (ports.Stats, error) {
	ctx, span := s.startSpan(ctx, "Service.DashboardStats")
	defer span.End()

	stats, err := s.inner.DashboardStats(ctx)
	if err != nil {
		return ports.Stats{}, s.handleError(ctx, span, err, "failed to compute dashboard stats")
	}
	span.SetAttributes(
		attribute.Int64("order.stats.total", stats.TotalOrders),
		attribute.Int64("order.stats.revenue", stats.Revenue),
	)
	return stats, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced     metric.Int64Counter
	eventsReconciled metric.Int64Counter
	paidOverrides    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	eventsReconciled, _ := m.Int64Counter("orders.service.reconciled", metric.WithDescription("Number of gateway events reconciled"))
	paidOverrides, _ := m.Int64Counter("orders.service.overrides", metric.WithDescription("Number of manual payment overrides"))
	return serviceMetrics{
		ordersPlaced:     ordersPlaced,
		eventsReconciled: eventsReconciled,
		paidOverrides:    paidOverrides,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, paymentType domain.PaymentType) {
	addCounter(ctx, m.ordersPlaced, 1, attribute.String("order.payment_type", string(paymentType)))
}

func (m serviceMetrics) recordReconciled(ctx context.Context, kind domain.EventKind) {
	addCounter(ctx, m.eventsReconciled, 1, attribute.String("event.kind", string(kind)))
}

func (m serviceMetrics) recordOverride(ctx context.Context, isPaid bool) {
	addCounter(ctx, m.paidOverrides, 1, attribute.Bool("order.is_paid", isPaid))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
