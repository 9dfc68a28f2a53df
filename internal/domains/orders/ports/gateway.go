package ports

import (
	"context"
	"errors"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
)

// ErrSessionNotFound signals that no checkout session is associated
// with the given payment intent. Reconciliation treats it as a no-op.
var ErrSessionNotFound = errors.New("checkout session not found")

// CheckoutLine is one displayed line of the hosted payment page, priced
// in minor currency units.
type CheckoutLine struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CheckoutRequest asks the gateway for a hosted payment flow. OrderID
// and UserID travel as opaque session metadata and come back during
// webhook reconciliation.
type CheckoutRequest struct {
	OrderID    string
	UserID     string
	Currency   string
	Lines      []CheckoutLine
	SuccessURL string
	CancelURL  string
}

// SessionMetadata is the order reference recovered from a checkout
// session during reconciliation.
type SessionMetadata struct {
	OrderID string
	UserID  string
}

// CheckoutGateway creates hosted checkout sessions and resolves
// payment intents back to the session metadata embedded at creation.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (redirectURL string, err error)
	MetadataByPaymentIntent(ctx context.Context, paymentIntentID string) (SessionMetadata, error)
}

// ErrBadSignature rejects a webhook payload whose signature does not
// verify. No ledger action may follow it.
var ErrBadSignature = errors.New("webhook signature verification failed")

// WebhookVerifier authenticates a raw webhook payload and maps it onto
// the closed event union. Verification happens before any field of the
// payload is interpreted.
type WebhookVerifier interface {
	VerifyAndParse(payload []byte, signature string) (domain.GatewayEvent, error)
}
