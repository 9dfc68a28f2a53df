package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

var _ ports.WebhookVerifier = (*WebhookVerifier)(nil)

// WebhookVerifier checks Stripe webhook signatures and maps verified
// payloads onto payment events. The signature header carries a
// timestamp and one or more HMAC-SHA256 digests of "timestamp.payload".
type WebhookVerifier struct {
	secret []byte
}

func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("webhook secret is required")
	}
	return &WebhookVerifier{secret: []byte(secret)}, nil
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// VerifyAndParse authenticates the raw payload before reading any of
// its fields. Event types outside the handled set come back as
// unhandled events so callers can acknowledge them without acting.
func (v *WebhookVerifier) VerifyAndParse(payload []byte, signature string) (domain.GatewayEvent, error) {
	if v == nil || len(v.secret) == 0 {
		return domain.GatewayEvent{}, errors.New("webhook verifier not configured")
	}
	if err := v.verify(payload, signature); err != nil {
		return domain.GatewayEvent{}, err
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return domain.GatewayEvent{}, fmt.Errorf("decode webhook payload: %w", err)
	}

	out := domain.GatewayEvent{
		Type:            event.Type,
		PaymentIntentID: event.Data.Object.ID,
	}
	switch event.Type {
	case "payment_intent.succeeded":
		out.Kind = domain.EventPaymentSucceeded
	case "payment_intent.payment_failed":
		out.Kind = domain.EventPaymentFailed
	default:
		out.Kind = domain.EventUnhandled
	}
	return out, nil
}

func (v *WebhookVerifier) verify(payload []byte, header string) error {
	timestamp, digests := parseSignatureHeader(header)
	if timestamp == "" || len(digests) == 0 {
		return ports.ErrBadSignature
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, digest := range digests {
		candidate, err := hex.DecodeString(digest)
		if err != nil {
			continue
		}
		if hmac.Equal(candidate, expected) {
			return nil
		}
	}
	return ports.ErrBadSignature
}

// parseSignatureHeader splits "t=1492774577,v1=5257a8...,v1=..." into
// the timestamp and the v1 digests.
func parseSignatureHeader(header string) (timestamp string, digests []string) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			digests = append(digests, value)
		}
	}
	return timestamp, digests
}
