package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store persists profiles, customer mappings, subscriptions and the purchase log.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetProfile returns the profile with the given id or ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, id string) (Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, full_name, created_at FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.Email, &p.FullName, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("error querying profile: %w", err)
	}
	return p, nil
}

// EnsureProfile inserts p unless a profile with the same id exists, then returns the stored row.
// An existing profile is never overwritten.
func (s *Store) EnsureProfile(ctx context.Context, p Profile) (Profile, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, full_name) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		p.ID, p.Email, p.FullName,
	)
	if err != nil {
		return Profile{}, fmt.Errorf("error inserting profile: %w", err)
	}
	return s.GetProfile(ctx, p.ID)
}

// UpsertCustomer creates or refreshes the customer mapping for c.UserID.
func (s *Store) UpsertCustomer(ctx context.Context, c Customer) error {
	return upsertCustomer(ctx, s.db, c)
}

// GetSubscription returns the subscription row for userID or ErrNotFound.
func (s *Store) GetSubscription(ctx context.Context, userID string) (Subscription, error) {
	var (
		sub         Subscription
		purchasedAt sql.NullTime
		expiresAt   sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, app_user_id, product_id, entitlement_id, status, purchased_at, expires_at,
		        environment, store, currency, price, last_event_at_ms, updated_at
		   FROM revenuecat_subscriptions WHERE user_id = $1`, userID,
	).Scan(&sub.UserID, &sub.AppUserID, &sub.ProductID, &sub.EntitlementID, &sub.Status, &purchasedAt, &expiresAt,
		&sub.Environment, &sub.Store, &sub.Currency, &sub.Price, &sub.LastEventAtMs, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Subscription{}, ErrNotFound
	}
	if err != nil {
		return Subscription{}, fmt.Errorf("error querying subscription: %w", err)
	}
	sub.PurchasedAt = nullTimePtr(purchasedAt)
	sub.ExpiresAt = nullTimePtr(expiresAt)
	return sub, nil
}

// ApplyWebhookEvent writes the customer mapping, the subscription state and the purchase log
// entry in one transaction. The subscription row is only overwritten when sub.LastEventAtMs is
// not older than the stored one, or is zero (order unknown); applied reports whether that
// happened. The stored ordering key never decreases. The log entry is always appended.
func (s *Store) ApplyWebhookEvent(ctx context.Context, c Customer, sub Subscription, p Purchase) (applied bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = upsertCustomer(ctx, tx, c); err != nil {
		return false, err
	}
	if applied, err = upsertSubscription(ctx, tx, sub); err != nil {
		return false, err
	}
	if err = insertPurchase(ctx, tx, p); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing webhook event: %w", err)
	}
	return applied, nil
}

// CountPurchases returns how many log rows carry eventID.
func (s *Store) CountPurchases(ctx context.Context, eventID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM revenuecat_purchases WHERE event_id = $1`, eventID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting purchases: %w", err)
	}
	return n, nil
}

func upsertCustomer(ctx context.Context, q querier, c Customer) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO revenuecat_customers (user_id, app_user_id, original_app_user_id, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id) DO UPDATE SET
		     app_user_id = EXCLUDED.app_user_id,
		     original_app_user_id = EXCLUDED.original_app_user_id,
		     updated_at = now()`,
		c.UserID, c.AppUserID, c.OriginalAppUserID,
	)
	if err != nil {
		return fmt.Errorf("error upserting revenuecat_customers: %w", err)
	}
	return nil
}

func upsertSubscription(ctx context.Context, q querier, sub Subscription) (bool, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO revenuecat_subscriptions (user_id, app_user_id, product_id, entitlement_id, status,
		     purchased_at, expires_at, environment, store, currency, price, last_event_at_ms, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		 ON CONFLICT (user_id) DO UPDATE SET
		     app_user_id = EXCLUDED.app_user_id,
		     product_id = EXCLUDED.product_id,
		     entitlement_id = EXCLUDED.entitlement_id,
		     status = EXCLUDED.status,
		     purchased_at = EXCLUDED.purchased_at,
		     expires_at = EXCLUDED.expires_at,
		     environment = EXCLUDED.environment,
		     store = EXCLUDED.store,
		     currency = EXCLUDED.currency,
		     price = EXCLUDED.price,
		     last_event_at_ms = GREATEST(revenuecat_subscriptions.last_event_at_ms, EXCLUDED.last_event_at_ms),
		     updated_at = now()
		 WHERE EXCLUDED.last_event_at_ms = 0
		    OR revenuecat_subscriptions.last_event_at_ms <= EXCLUDED.last_event_at_ms`,
		sub.UserID, sub.AppUserID, sub.ProductID, sub.EntitlementID, sub.Status,
		timePtrArg(sub.PurchasedAt), timePtrArg(sub.ExpiresAt), sub.Environment, sub.Store, sub.Currency,
		sub.Price, sub.LastEventAtMs,
	)
	if err != nil {
		return false, fmt.Errorf("error upserting revenuecat_subscriptions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return n > 0, nil
}

func insertPurchase(ctx context.Context, q querier, p Purchase) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO revenuecat_purchases (id, user_id, app_user_id, product_id, event_type, event_id,
		     purchased_at, expires_at, price, currency, store, environment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.UserID, p.AppUserID, p.ProductID, p.EventType, p.EventID,
		timePtrArg(p.PurchasedAt), timePtrArg(p.ExpiresAt), p.Price, p.Currency, p.Store, p.Environment,
	)
	if err != nil {
		return fmt.Errorf("error inserting revenuecat_purchases: %w", err)
	}
	return nil
}
