// Package http exposes the order workflow over gin handlers.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront-api/internal/domains/orders/adapters/http/mapper"
	"github.com/greenbasket/storefront-api/internal/domains/orders/application"
	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
	"github.com/greenbasket/storefront-api/internal/shared/auth"
	"github.com/greenbasket/storefront-api/internal/shared/respond"
)

// SignatureHeader carries the gateway's webhook signature.
const SignatureHeader = "Stripe-Signature"

// Handler adapts the order workflow service to HTTP.
type Handler struct {
	service  ports.Service
	verifier ports.WebhookVerifier
	logger   *slog.Logger
}

func NewHandler(service ports.Service, verifier ports.WebhookVerifier, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, verifier: verifier, logger: logger}
}

type placeOrderRequest struct {
	Items   []mapper.LineItem `json:"items"`
	Address domain.Address    `json:"address"`
}

// PlaceCOD handles POST /api/order/cod.
func (h *Handler) PlaceCOD(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	order, err := h.service.PlaceCODOrder(c.Request.Context(), ports.PlaceOrderInput{
		UserID:  auth.UserID(c),
		Items:   mapper.ToDomainItems(req.Items),
		Address: req.Address,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.Created(c, "Order Placed Successfully", gin.H{"order": mapper.FromDomainOrder(order)})
}

// PlaceOnline handles POST /api/order/stripe and returns the hosted
// checkout redirect URL.
func (h *Handler) PlaceOnline(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	_, url, err := h.service.PlaceOnlineOrder(c.Request.Context(), ports.PlaceOrderInput{
		UserID:  auth.UserID(c),
		Items:   mapper.ToDomainItems(req.Items),
		Address: req.Address,
		Origin:  c.GetHeader("Origin"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "", gin.H{"url": url})
}

// Webhook handles POST /api/order/webhook. The raw body is required for
// signature verification; a bad signature is rejected with 400 before
// any ledger action.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		respond.BadRequest(c, "unable to read webhook payload")
		return
	}
	event, err := h.verifier.VerifyAndParse(payload, c.GetHeader(SignatureHeader))
	if err != nil {
		h.logger.Warn("rejected webhook", slog.String("error", err.Error()))
		respond.BadRequest(c, "webhook signature verification failed")
		return
	}
	if err := h.service.HandleGatewayEvent(c.Request.Context(), event); err != nil {
		respond.Internal(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// BuyerOrders handles GET /api/order/user.
func (h *Handler) BuyerOrders(c *gin.Context) {
	orders, err := h.service.OrdersForBuyer(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "", gin.H{"orders": mapper.FromDomainOrders(orders)})
}

// SellerOrders handles GET /api/order/seller.
func (h *Handler) SellerOrders(c *gin.Context) {
	orders, err := h.service.AllOrders(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "", gin.H{"orders": mapper.FromDomainOrders(orders)})
}

type updatePaymentRequest struct {
	OrderID string `json:"orderId"`
	IsPaid  bool   `json:"isPaid"`
}

// UpdatePayment handles POST /api/order/update-payment, the operator
// escape hatch.
func (h *Handler) UpdatePayment(c *gin.Context) {
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	if req.OrderID == "" {
		respond.BadRequest(c, "Order ID is required")
		return
	}
	if err := h.service.SetPaymentStatus(c.Request.Context(), req.OrderID, req.IsPaid); err != nil {
		h.respondError(c, err)
		return
	}
	message := "Payment marked as Pending"
	if req.IsPaid {
		message = "Payment marked as Paid"
	}
	respond.OK(c, message, nil)
}

// Stats handles GET /api/order/stats for the seller dashboard.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "", gin.H{"stats": gin.H{
		"totalOrders":   stats.TotalOrders,
		"revenue":       stats.Revenue,
		"paidOrders":    stats.PaidOrders,
		"pendingOrders": stats.PendingOrders,
	}})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		respond.BadRequest(c, err.Error())
	case errors.Is(err, ports.ErrNotFound):
		respond.NotFound(c, "order not found")
	default:
		h.logger.Error("order request failed", slog.String("error", err.Error()))
		respond.Internal(c)
	}
}
