package app

import (
	"encoding/json"
	"time"
)

// Status is the entitlement state persisted for a user.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusExpired  Status = "expired"
	StatusPastDue  Status = "past_due"
)

// RevenueCat webhook event types that change subscription state.
const (
	EventInitialPurchase = "INITIAL_PURCHASE"
	EventRenewal         = "RENEWAL"
	EventProductChange   = "PRODUCT_CHANGE"
	EventCancellation    = "CANCELLATION"
	EventExpiration      = "EXPIRATION"
	EventBillingIssue    = "BILLING_ISSUE"
)

const defaultPlatform = "web"

// WebhookEnvelope is the JSON document RevenueCat posts to the webhook.
type WebhookEnvelope struct {
	APIVersion string       `json:"api_version"`
	Event      WebhookEvent `json:"event"`
}

// WebhookEvent carries the fields of a RevenueCat event this service reads.
// Timestamps are epoch milliseconds; zero means absent.
type WebhookEvent struct {
	Type              string   `json:"type"`
	ID                string   `json:"id"`
	AppUserID         string   `json:"app_user_id"`
	OriginalAppUserID string   `json:"original_app_user_id"`
	ProductID         string   `json:"product_id"`
	PeriodType        string   `json:"period_type"`
	EventTimestampMs  int64    `json:"event_timestamp_ms"`
	PurchasedAtMs     int64    `json:"purchased_at_ms"`
	ExpirationAtMs    int64    `json:"expiration_at_ms"`
	Environment       string   `json:"environment"`
	EntitlementID     string   `json:"entitlement_id"`
	EntitlementIDs    []string `json:"entitlement_ids"`
	Store             string   `json:"store"`
	Currency          string   `json:"currency"`
	Price             float64  `json:"price"`
	CountryCode       string   `json:"country_code"`
}

// WebhookResult describes what HandleWebhook did with an event.
type WebhookResult struct {
	// Handled is false for event types that do not map onto a status.
	Handled bool
	Status  Status
	UserID  string
	// Applied is false when the subscription row already reflected a newer event.
	Applied bool
}

// Caller is an authenticated user of the purchase and subscription endpoints.
type Caller struct {
	UserID   string
	Email    string
	FullName string
}

// VerifyPurchaseRequest is the body of the purchase verification endpoint.
type VerifyPurchaseRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	ReceiptData string `json:"receiptData" validate:"required"`
	Platform    string `json:"platform" validate:"omitempty,max=32"`
}

// VerifyPurchaseResponse is returned after RevenueCat accepted a receipt.
type VerifyPurchaseResponse struct {
	Success      bool            `json:"success"`
	CustomerInfo json.RawMessage `json:"customer_info"`
	AppUserID    string          `json:"app_user_id"`
}

// Profile is the caller's identity record.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// SubscriptionView is the caller-facing projection of a subscription row.
type SubscriptionView struct {
	ProductID     string     `json:"product_id"`
	EntitlementID string     `json:"entitlement_id,omitempty"`
	Status        Status     `json:"status"`
	PurchasedAt   *time.Time `json:"purchased_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at"`
	Price         float64    `json:"price"`
	Currency      string     `json:"currency"`
	Store         string     `json:"store,omitempty"`
	Environment   string     `json:"environment,omitempty"`
	IsActive      bool       `json:"is_active"`
}
