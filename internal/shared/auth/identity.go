// Package auth carries the authenticated identity through the gin
// request context. Handlers read the identity explicitly; nothing else
// is stored as ambient request state.
package auth

import "github.com/gin-gonic/gin"

const (
	userIDKey = "auth.userID"
	sellerKey = "auth.seller"
)

// SetUserID records the authenticated buyer on the request.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}

// UserID returns the authenticated buyer id, or "" when unauthenticated.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// MarkSeller records that the request carries a valid seller session.
func MarkSeller(c *gin.Context) {
	c.Set(sellerKey, true)
}

// IsSeller reports whether the request carries a valid seller session.
func IsSeller(c *gin.Context) bool {
	return c.GetBool(sellerKey)
}
