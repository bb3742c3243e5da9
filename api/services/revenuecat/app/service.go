package app

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	gw "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/gateway"
)

// Service defines the business operations for the RevenueCat domain.
type Service interface {
	VerifyPurchase(ctx context.Context, caller Caller, req VerifyPurchaseRequest) (VerifyPurchaseResponse, error)
	HandleWebhook(ctx context.Context, env WebhookEnvelope) (WebhookResult, error)
	EnsureProfile(ctx context.Context, caller Caller) (Profile, error)
	GetSubscription(ctx context.Context, caller Caller) (*SubscriptionView, error)
}

// Options carries the configuration values the service depends on.
type Options struct {
	AppUserIDPrefix string
	WebhookSecret   string
	// Now defaults to time.Now.
	Now func() time.Time
}

type serviceImpl struct {
	repo     Repository
	gw       gw.RevenueCatGateway
	opts     Options
	validate *validator.Validate
}

func NewService(repo Repository, g gw.RevenueCatGateway, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	v := validator.New()
	// Report json field names so errors match what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return serviceImpl{repo: repo, gw: g, opts: opts, validate: v}
}
