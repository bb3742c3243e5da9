package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	rcdb "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/db"
)

// EnsureProfile returns the caller's profile, creating it on first use.
func (s serviceImpl) EnsureProfile(ctx context.Context, caller Caller) (Profile, error) {
	if caller.UserID == "" {
		return Profile{}, fmt.Errorf("%w: Unauthorized", ErrUnauthorized)
	}
	p, err := s.repo.EnsureProfile(ctx, rcdb.Profile{
		ID:       caller.UserID,
		Email:    caller.Email,
		FullName: displayName(caller),
	})
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return Profile{ID: p.ID, Email: p.Email, FullName: p.FullName}, nil
}

// GetSubscription returns the caller's subscription, or nil when none was ever recorded.
func (s serviceImpl) GetSubscription(ctx context.Context, caller Caller) (*SubscriptionView, error) {
	if caller.UserID == "" {
		return nil, fmt.Errorf("%w: Unauthorized", ErrUnauthorized)
	}
	sub, err := s.repo.GetSubscription(ctx, caller.UserID)
	if errors.Is(err, rcdb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	view := &SubscriptionView{
		ProductID:     sub.ProductID,
		EntitlementID: sub.EntitlementID,
		Status:        Status(sub.Status),
		PurchasedAt:   sub.PurchasedAt,
		ExpiresAt:     sub.ExpiresAt,
		Price:         sub.Price,
		Currency:      sub.Currency,
		Store:         sub.Store,
		Environment:   sub.Environment,
	}
	view.IsActive = isEntitled(view.Status, view.ExpiresAt, s.opts.Now())
	return view, nil
}

// isEntitled reports whether the subscription still grants access at now. A canceled
// subscription only stops renewing and keeps access until its known expiry.
func isEntitled(status Status, expiresAt *time.Time, now time.Time) bool {
	switch status {
	case StatusActive:
		return expiresAt == nil || expiresAt.After(now)
	case StatusCanceled:
		return expiresAt != nil && expiresAt.After(now)
	default:
		return false
	}
}
