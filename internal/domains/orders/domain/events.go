package domain

// EventKind is the closed set of gateway notifications the workflow
// reconciles against the ledger.
type EventKind string

const (
	EventPaymentSucceeded EventKind = "payment_succeeded"
	EventPaymentFailed    EventKind = "payment_failed"
	EventUnhandled        EventKind = "unhandled"
)

// GatewayEvent is a verified payment notification. PaymentIntentID is
// the gateway transaction the event refers to; the order it maps to is
// resolved through the checkout session that produced the intent.
type GatewayEvent struct {
	Kind            EventKind
	Type            string
	PaymentIntentID string
}
