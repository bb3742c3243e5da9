package revenuecatgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gw "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/gateway"
)

const defaultTimeout = 15 * time.Second

// maxErrorBody caps how much of a failed response is copied into the error.
const maxErrorBody = 4 << 10

// APIError is returned for any non-2xx RevenueCat response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("RevenueCat API error: %d - %s", e.StatusCode, e.Body)
}

// client is the net/http implementation of the gateway.
type client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

// Option customizes the client returned by New.
type Option func(*client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *client) { c.http = h }
}

// New returns a RevenueCatGateway talking to baseURL with the given secret API key.
func New(baseURL, secretKey string, opts ...Option) gw.RevenueCatGateway {
	c := &client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type receiptResponse struct {
	Subscriber json.RawMessage `json:"subscriber"`
}

func (c *client) PostReceipt(ctx context.Context, req gw.ReceiptRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error encoding receipt request: %w", err)
	}
	endpoint := c.baseURL + "/subscribers/" + url.PathEscape(req.AppUserID) + "/receipts"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building receipt request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error calling RevenueCat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	var out receiptResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding RevenueCat response: %w", err)
	}
	return out.Subscriber, nil
}
