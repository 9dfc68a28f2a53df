// Package respond implements the API's uniform response envelope: every
// reply carries a success flag and a human-readable message, so callers
// never have to infer outcomes from status codes alone.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape shared by every endpoint.
type Envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"-"`
}

// OK sends a success envelope with optional extra payload fields merged
// at the top level (e.g. "orders", "url", "products").
func OK(c *gin.Context, message string, data map[string]any) {
	JSON(c, http.StatusOK, true, message, data)
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, message string, data map[string]any) {
	JSON(c, http.StatusCreated, true, message, data)
}

// Fail sends a failure envelope with the given status.
func Fail(c *gin.Context, status int, message string) {
	JSON(c, status, false, message, nil)
}

// BadRequest sends a 400 failure envelope.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 failure envelope.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Unauthorized sends a 401 failure envelope.
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Internal sends a 500 failure envelope with a generic message; the
// underlying error belongs in logs, not in the client response.
func Internal(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "something went wrong")
}

// JSON assembles and writes the envelope. Data keys are merged beside
// the success and message fields.
func JSON(c *gin.Context, status int, success bool, message string, data map[string]any) {
	body := gin.H{"success": success}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}
