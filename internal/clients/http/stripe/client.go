// Package stripe implements the checkout gateway against the Stripe
// HTTP API: hosted checkout sessions on the way out, session metadata
// lookups and signed webhook events on the way back.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

// DefaultBaseURL is the production Stripe API endpoint.
const DefaultBaseURL = "https://api.stripe.com"

var _ ports.CheckoutGateway = (*Client)(nil)

// Client talks to the Stripe REST API with form-encoded requests.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient instantiates the gateway client with sane defaults. The
// base URL override exists for tests and sandboxes.
func NewClient(secretKey, baseURL string, httpClient *http.Client) (*Client, error) {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: httpClient,
	}, nil
}

type checkoutSession struct {
	ID       string            `json:"id"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata"`
}

type sessionList struct {
	Data []checkoutSession `json:"data"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreateSession opens a hosted checkout session and returns its
// redirect URL. The order and buyer references ride along as metadata.
func (c *Client) CreateSession(ctx context.Context, req ports.CheckoutRequest) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", errors.New("stripe client not configured")
	}
	if len(req.Lines) == 0 {
		return "", errors.New("checkout session needs at least one line")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("metadata[orderId]", req.OrderID)
	form.Set("metadata[userId]", req.UserID)
	for i, line := range req.Lines {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.FormatInt(line.Quantity, 10))
		form.Set(prefix+"[price_data][currency]", strings.ToLower(req.Currency))
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(line.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", line.Name)
	}

	var session checkoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return "", err
	}
	if session.URL == "" {
		return "", errors.New("stripe returned a session without a redirect URL")
	}
	return session.URL, nil
}

// MetadataByPaymentIntent looks up the checkout session that produced
// the given payment intent and returns its embedded metadata.
func (c *Client) MetadataByPaymentIntent(ctx context.Context, paymentIntentID string) (ports.SessionMetadata, error) {
	if c == nil || c.httpClient == nil {
		return ports.SessionMetadata{}, errors.New("stripe client not configured")
	}
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return ports.SessionMetadata{}, ports.ErrSessionNotFound
	}

	query := url.Values{}
	query.Set("payment_intent", paymentIntentID)

	var list sessionList
	if err := c.do(ctx, http.MethodGet, "/v1/checkout/sessions?"+query.Encode(), nil, &list); err != nil {
		return ports.SessionMetadata{}, err
	}
	if len(list.Data) == 0 {
		return ports.SessionMetadata{}, ports.ErrSessionNotFound
	}
	meta := list.Data[0].Metadata
	return ports.SessionMetadata{
		OrderID: meta["orderId"],
		UserID:  meta["userId"],
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call stripe API: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read stripe response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe API error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("stripe API unexpected status: %s", resp.Status)
	}
	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode stripe response: %w", err)
		}
	}
	return nil
}
