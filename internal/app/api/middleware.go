package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	sellershttp "github.com/greenbasket/storefront-api/internal/domains/sellers/adapters/http"
	sellersapp "github.com/greenbasket/storefront-api/internal/domains/sellers/application"
	usershttp "github.com/greenbasket/storefront-api/internal/domains/users/adapters/http"
	userports "github.com/greenbasket/storefront-api/internal/domains/users/ports"
	"github.com/greenbasket/storefront-api/internal/shared/auth"
	"github.com/greenbasket/storefront-api/internal/shared/respond"
)

// requireBuyer resolves the buyer session token from the cookie or the
// Authorization header and stores the buyer id on the request.
func requireBuyer(sessions userports.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := buyerToken(c)
		if token == "" {
			respond.Unauthorized(c, "Not Authorized")
			c.Abort()
			return
		}
		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			respond.Unauthorized(c, "Not Authorized")
			c.Abort()
			return
		}
		auth.SetUserID(c, userID)
		c.Next()
	}
}

// requireSeller verifies the seller session cookie.
func requireSeller(sellers *sellersapp.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sellershttp.CookieName)
		if err != nil || !sellers.Verify(c.Request.Context(), token) {
			respond.Unauthorized(c, "Not Authorized")
			c.Abort()
			return
		}
		auth.MarkSeller(c)
		c.Next()
	}
}

func buyerToken(c *gin.Context) string {
	if token, err := c.Cookie(usershttp.CookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if rest, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(rest)
	}
	return ""
}
