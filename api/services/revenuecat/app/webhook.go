package app

import (
	"context"
	"fmt"
	"log/slog"

	rcdb "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/db"
)

// HandleWebhook reconciles one RevenueCat event into local subscription state.
//
// Events without an app_user_id are rejected. Event types that do not map onto a
// status are logged and dropped without writes.
// Mapped events upsert the customer mapping, upsert the subscription row unless it
// already reflects a newer event, and append to the purchase log, all atomically.
func (s serviceImpl) HandleWebhook(ctx context.Context, env WebhookEnvelope) (WebhookResult, error) {
	if s.opts.WebhookSecret == "" {
		return WebhookResult{}, fmt.Errorf("%w: RevenueCat webhook secret not configured", ErrNotConfigured)
	}
	e := env.Event
	slog.Info("revenuecat webhook received", "type", e.Type, "event_id", e.ID)

	userID := UserIDFromAppUserID(s.opts.AppUserIDPrefix, e.AppUserID)
	if userID == "" {
		webhookEvents.WithLabelValues(metricType(e.Type), outcomeError).Inc()
		return WebhookResult{}, fmt.Errorf("%w: app_user_id missing", ErrBadEvent)
	}

	status, ok := StatusForEventType(e.Type)
	if !ok {
		slog.Info("unhandled revenuecat event type", "type", e.Type, "event_id", e.ID)
		webhookEvents.WithLabelValues(metricType(e.Type), outcomeUnhandled).Inc()
		return WebhookResult{UserID: userID}, nil
	}

	purchasedAt := msToTime(e.PurchasedAtMs)
	expiresAt := msToTime(e.ExpirationAtMs)

	customer := rcdb.Customer{
		UserID:            userID,
		AppUserID:         e.AppUserID,
		OriginalAppUserID: e.OriginalAppUserID,
	}
	sub := rcdb.Subscription{
		UserID:        userID,
		AppUserID:     e.AppUserID,
		ProductID:     e.ProductID,
		EntitlementID: entitlementID(e),
		Status:        string(status),
		PurchasedAt:   purchasedAt,
		ExpiresAt:     expiresAt,
		Environment:   e.Environment,
		Store:         e.Store,
		Currency:      e.Currency,
		Price:         e.Price,
		LastEventAtMs: orderingTimestamp(e),
	}
	purchase := rcdb.Purchase{
		UserID:      userID,
		AppUserID:   e.AppUserID,
		ProductID:   e.ProductID,
		EventType:   e.Type,
		EventID:     e.ID,
		PurchasedAt: purchasedAt,
		ExpiresAt:   expiresAt,
		Price:       e.Price,
		Currency:    e.Currency,
		Store:       e.Store,
		Environment: e.Environment,
	}

	applied, err := s.repo.ApplyWebhookEvent(ctx, customer, sub, purchase)
	if err != nil {
		webhookEvents.WithLabelValues(e.Type, outcomeError).Inc()
		return WebhookResult{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if applied {
		webhookEvents.WithLabelValues(e.Type, outcomeApplied).Inc()
		slog.Info("subscription updated", "user_id", userID, "status", status, "event_id", e.ID)
	} else {
		webhookEvents.WithLabelValues(e.Type, outcomeStale).Inc()
		slog.Warn("stale revenuecat event ignored for subscription state", "user_id", userID, "type", e.Type, "event_id", e.ID)
	}
	return WebhookResult{Handled: true, Status: status, UserID: userID, Applied: applied}, nil
}
