package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

func signPayload(t *testing.T, secret, timestamp string, payload []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyAndParseSucceededEvent(t *testing.T) {
	verifier, err := NewWebhookVerifier("whsec_test")
	require.NoError(t, err)

	payload := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_123"}}}`)
	header := signPayload(t, "whsec_test", "1492774577", payload)

	event, err := verifier.VerifyAndParse(payload, header)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPaymentSucceeded, event.Kind)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
	assert.Equal(t, "pi_123", event.PaymentIntentID)
}

func TestVerifyAndParseFailedEvent(t *testing.T) {
	verifier, err := NewWebhookVerifier("whsec_test")
	require.NoError(t, err)

	payload := []byte(`{"type":"payment_intent.payment_failed","data":{"object":{"id":"pi_456"}}}`)
	header := signPayload(t, "whsec_test", "1492774577", payload)

	event, err := verifier.VerifyAndParse(payload, header)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPaymentFailed, event.Kind)
	assert.Equal(t, "pi_456", event.PaymentIntentID)
}

func TestVerifyAndParseUnhandledType(t *testing.T) {
	verifier, err := NewWebhookVerifier("whsec_test")
	require.NoError(t, err)

	payload := []byte(`{"type":"charge.refunded","data":{"object":{"id":"ch_789"}}}`)
	header := signPayload(t, "whsec_test", "1492774577", payload)

	event, err := verifier.VerifyAndParse(payload, header)
	require.NoError(t, err)
	assert.Equal(t, domain.EventUnhandled, event.Kind)
	assert.Equal(t, "charge.refunded", event.Type)
}

func TestVerifyAndParseRejectsBadSignature(t *testing.T) {
	verifier, err := NewWebhookVerifier("whsec_test")
	require.NoError(t, err)

	payload := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_123"}}}`)
	header := signPayload(t, "whsec_other", "1492774577", payload)

	_, err = verifier.VerifyAndParse(payload, header)
	require.True(t, errors.Is(err, ports.ErrBadSignature))
}

func TestVerifyAndParseRejectsTamperedPayload(t *testing.T) {
	verifier, err := NewWebhookVerifier("whsec_test")
	require.NoError(t, err)

	payload := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_123"}}}`)
	header := signPayload(t, "whsec_test", "1492774577", payload)
	tampered := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_999"}}}`)

	_, err = verifier.VerifyAndParse(tampered, header)
	require.True(t, errors.Is(err, ports.ErrBadSignature))
}

func TestVerifyAndParseRejectsMalformedHeader(t *testing.T) {
	verifier, err := NewWebhookVerifier("whsec_test")
	require.NoError(t, err)

	for _, header := range []string{"", "t=123", "v1=deadbeef", "garbage"} {
		_, err := verifier.VerifyAndParse([]byte(`{}`), header)
		assert.True(t, errors.Is(err, ports.ErrBadSignature), "header %q", header)
	}
}

func TestVerifyAndParseAcceptsSecondDigest(t *testing.T) {
	verifier, err := NewWebhookVerifier("whsec_test")
	require.NoError(t, err)

	payload := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_123"}}}`)
	good := signPayload(t, "whsec_test", "1492774577", payload)
	// Key rotation sends digests for old and new secrets in one header.
	header := "t=1492774577,v1=" + hex.EncodeToString(make([]byte, 32)) + good[len("t=1492774577"):]

	_, err = verifier.VerifyAndParse(payload, header)
	require.NoError(t, err)
}
