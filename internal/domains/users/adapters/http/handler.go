// Package http exposes buyer account endpoints over gin handlers.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront-api/internal/domains/users/domain"
	"github.com/greenbasket/storefront-api/internal/domains/users/ports"
	"github.com/greenbasket/storefront-api/internal/shared/auth"
	"github.com/greenbasket/storefront-api/internal/shared/respond"
)

// CookieName carries the buyer session token.
const CookieName = "token"

// cookieMaxAge matches the session TTL used by the stores.
const cookieMaxAge = 7 * 24 * 60 * 60

// Handler adapts the users service to HTTP.
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

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/user/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	user, token, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	setSessionCookie(c, token)
	respond.Created(c, "Account created", gin.H{"user": userPayload(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/user/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	setSessionCookie(c, token)
	respond.OK(c, "Logged In", gin.H{"user": userPayload(user)})
}

// IsAuth handles GET /api/user/is-auth for an authenticated buyer.
func (h *Handler) IsAuth(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "", gin.H{"user": userPayload(user)})
}

// Logout handles GET /api/user/logout.
func (h *Handler) Logout(c *gin.Context) {
	h.service.Logout(c.Request.Context(), auth.UserID(c))
	clearSessionCookie(c)
	respond.OK(c, "Logged Out", nil)
}

type updateCartRequest struct {
	CartItems map[string]int64 `json:"cartItems"`
}

// UpdateCart handles POST /api/cart/update, replacing the buyer's cart
// state wholesale.
func (h *Handler) UpdateCart(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	if err := h.service.UpdateCart(c.Request.Context(), auth.UserID(c), req.CartItems); err != nil {
		h.respondError(c, err)
		return
	}
	respond.OK(c, "Cart Updated", nil)
}

func userPayload(user *domain.User) gin.H {
	return gin.H{
		"_id":       user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"cartItems": user.CartItems,
	}
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieName, token, cookieMaxAge, "/", "", true, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieName, "", -1, "/", "", true, true)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrInvalidCredentials):
		respond.Unauthorized(c, "Invalid Credentials")
	case errors.Is(err, ports.ErrEmailTaken):
		respond.BadRequest(c, "Email already registered")
	case errors.Is(err, ports.ErrNotFound):
		respond.NotFound(c, "user not found")
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrEmptyPassword):
		respond.BadRequest(c, err.Error())
	default:
		h.logger.Error("user request failed", slog.String("error", err.Error()))
		respond.Internal(c)
	}
}
