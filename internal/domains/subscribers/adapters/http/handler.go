// Package http exposes the newsletter list over gin handlers.
package http

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront-api/internal/domains/subscribers/domain"
	"github.com/greenbasket/storefront-api/internal/domains/subscribers/ports"
	"github.com/greenbasket/storefront-api/internal/shared/respond"
)

// Handler adapts the subscriber service to HTTP.
type Handler struct {
	service ports.Service
	logger  *slog.Logger
}

func NewHandler(service ports.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

type subscriberPayload struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

func toPayload(s *domain.Subscriber) subscriberPayload {
	return subscriberPayload{
		ID:        s.ID,
		Email:     s.Email,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// Subscribe handles POST /api/subscriber/subscribe.
func (h *Handler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}

	reactivated, err := h.service.Subscribe(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, ports.ErrAlreadySubscribed):
		respond.BadRequest(c, "Email already subscribed")
		return
	case errors.Is(err, domain.ErrInvalidEmail):
		respond.BadRequest(c, err.Error())
		return
	case err != nil:
		h.logger.Error("subscribe failed", slog.Any("error", err))
		respond.Internal(c)
		return
	}

	if reactivated {
		respond.OK(c, "Welcome back! Subscription reactivated", nil)
		return
	}
	respond.Created(c, "Successfully subscribed to newsletter!", nil)
}

// List handles GET /api/subscriber/list.
func (h *Handler) List(c *gin.Context) {
	subscribers, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list subscribers failed", slog.Any("error", err))
		respond.Internal(c)
		return
	}
	payload := make([]subscriberPayload, 0, len(subscribers))
	for _, subscriber := range subscribers {
		payload = append(payload, toPayload(subscriber))
	}
	respond.OK(c, "", map[string]any{"subscribers": payload})
}

// Delete handles POST /api/subscriber/delete.
func (h *Handler) Delete(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		respond.BadRequest(c, "subscriber id is required")
		return
	}

	err := h.service.Delete(c.Request.Context(), req.ID)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respond.NotFound(c, "Subscriber not found")
		return
	case err != nil:
		h.logger.Error("delete subscriber failed", slog.Any("error", err))
		respond.Internal(c)
		return
	}
	respond.OK(c, "Subscriber removed", nil)
}

// ToggleStatus handles POST /api/subscriber/toggle-status.
func (h *Handler) ToggleStatus(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		respond.BadRequest(c, "subscriber id is required")
		return
	}

	active, err := h.service.ToggleStatus(c.Request.Context(), req.ID)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respond.NotFound(c, "Subscriber not found")
		return
	case err != nil:
		h.logger.Error("toggle subscriber failed", slog.Any("error", err))
		respond.Internal(c)
		return
	}

	message := "Subscriber deactivated"
	if active {
		message = "Subscriber activated"
	}
	respond.OK(c, message, map[string]any{"isActive": active})
}
