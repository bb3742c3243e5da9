package app

import (
	"context"

	rcdb "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/db"
)

//go:generate mockgen -source=repository.go -destination=mock_repository_test.go -package=app
//go:generate mockgen -source=../gateway/gateway.go -destination=mock_gateway_test.go -package=app

// Repository is the persistence the app layer needs; *rcdb.Store implements it.
type Repository interface {
	EnsureProfile(ctx context.Context, p rcdb.Profile) (rcdb.Profile, error)
	UpsertCustomer(ctx context.Context, c rcdb.Customer) error
	GetSubscription(ctx context.Context, userID string) (rcdb.Subscription, error)
	ApplyWebhookEvent(ctx context.Context, c rcdb.Customer, s rcdb.Subscription, p rcdb.Purchase) (bool, error)
}
