package db

import "time"

// Profile is the local identity record, created on first authenticated request.
type Profile struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
}

// Customer maps a local user id onto its RevenueCat app_user_id.
type Customer struct {
	UserID            string
	AppUserID         string
	OriginalAppUserID string
}

// Subscription is the single entitlement row kept per user.
type Subscription struct {
	UserID        string
	AppUserID     string
	ProductID     string
	EntitlementID string
	Status        string
	PurchasedAt   *time.Time
	ExpiresAt     *time.Time
	Environment   string
	Store         string
	Currency      string
	Price         float64
	// LastEventAtMs is the provider timestamp of the event that produced this row.
	LastEventAtMs int64
	UpdatedAt     time.Time
}

// Purchase is one row of the append-only webhook audit log.
type Purchase struct {
	ID          string
	UserID      string
	AppUserID   string
	ProductID   string
	EventType   string
	EventID     string
	PurchasedAt *time.Time
	ExpiresAt   *time.Time
	Price       float64
	Currency    string
	Store       string
	Environment string
}
