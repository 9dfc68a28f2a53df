// Package http exposes seller back-office auth over gin handlers.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront-api/internal/domains/sellers/application"
	"github.com/greenbasket/storefront-api/internal/shared/respond"
)

// CookieName carries the seller session token.
const CookieName = "sellerToken"

const cookieMaxAge = 7 * 24 * 60 * 60

// Handler adapts seller auth to HTTP.
type Handler struct {
	service *application.Service
	logger  *slog.Logger
}

func NewHandler(service *application.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/seller/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			respond.Unauthorized(c, "Invalid Credentials")
			return
		}
		h.logger.Error("seller login failed", slog.String("error", err.Error()))
		respond.Internal(c)
		return
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieName, token, cookieMaxAge, "/", "", true, true)
	respond.OK(c, "Logged In", nil)
}

// IsAuth handles GET /api/seller/is-auth. Reaching it through the
// seller middleware already proves the session.
func (h *Handler) IsAuth(c *gin.Context) {
	respond.OK(c, "", nil)
}

// Logout handles GET /api/seller/logout.
func (h *Handler) Logout(c *gin.Context) {
	h.service.Logout(c.Request.Context())
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieName, "", -1, "/", "", true, true)
	respond.OK(c, "Logged Out", nil)
}
