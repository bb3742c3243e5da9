package app

import (
	"strings"
	"time"
)

// AppUserID builds the RevenueCat app_user_id for a local user id.
func AppUserID(prefix, userID string) string {
	return prefix + userID
}

// UserIDFromAppUserID strips prefix from a RevenueCat app_user_id. Ids without the prefix
// are returned unchanged.
func UserIDFromAppUserID(prefix, appUserID string) string {
	return strings.TrimPrefix(appUserID, prefix)
}

// StatusForEventType maps a RevenueCat event type onto a subscription status.
// The second result is false for types that carry no status change.
func StatusForEventType(eventType string) (Status, bool) {
	switch eventType {
	case EventInitialPurchase, EventRenewal, EventProductChange:
		return StatusActive, true
	case EventCancellation:
		return StatusCanceled, true
	case EventExpiration:
		return StatusExpired, true
	case EventBillingIssue:
		return StatusPastDue, true
	default:
		return "", false
	}
}

func msToTime(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

// orderingTimestamp is the instant used to decide whether an event is newer than stored state.
// Zero means the order is unknown and the store applies the event unconditionally.
// purchased_at_ms is not a substitute: cancellations and expirations carry the
// original purchase time, which would make them look older than the renewal they follow.
func orderingTimestamp(e WebhookEvent) int64 {
	if e.EventTimestampMs > 0 {
		return e.EventTimestampMs
	}
	return 0
}

func entitlementID(e WebhookEvent) string {
	if e.EntitlementID != "" {
		return e.EntitlementID
	}
	if len(e.EntitlementIDs) > 0 {
		return e.EntitlementIDs[0]
	}
	return ""
}

// displayName picks the profile name: explicit name, else email local part, else "User".
func displayName(c Caller) string {
	if n := strings.TrimSpace(c.FullName); n != "" {
		return n
	}
	if local, _, _ := strings.Cut(c.Email, "@"); local != "" {
		return local
	}
	return "User"
}
