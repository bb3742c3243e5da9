package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tbeaudouin05/tenderguard-api/api/auth"
	bootstrap "github.com/tbeaudouin05/tenderguard-api/api/bootstrap"
	"github.com/tbeaudouin05/tenderguard-api/api/config"
	docapp "github.com/tbeaudouin05/tenderguard-api/api/services/documents/app"
	rcapp "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/app"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Service   rcapp.Service
	Documents docapp.Service
	Verifier  *auth.Verifier
	// Health reports whether backing stores are reachable; nil means always healthy.
	Health func(ctx context.Context) error
	// WebhookSecret is compared against the webhook Authorization header when
	// VerifyWebhookAuthorization is set.
	WebhookSecret              string
	VerifyWebhookAuthorization bool
	AllowedOrigins             []string
}

// NewRouter returns the central HTTP router for the API backed by the bootstrapped services.
func NewRouter() http.Handler {
	// Initialize app dependencies (non-fatal if it fails here; handlers re-check).
	if err := bootstrap.Ensure(); err != nil {
		slog.Error("bootstrap ensure failed", "err", err)
	}
	cfg := config.AppConfig
	if cfg == nil {
		cfg = &config.Config{CORSAllowedOrigins: "*"}
	}
	return New(Deps{
		Service:                    bootstrap.GetService(),
		Documents:                  bootstrap.GetDocuments(),
		Verifier:                   auth.NewVerifier(cfg.SupabaseJWTSecret),
		Health:                     bootstrap.Health,
		WebhookSecret:              cfg.RevenueCatWebhookSecret,
		VerifyWebhookAuthorization: cfg.WebhookVerifyAuthorization,
		AllowedOrigins:             cfg.AllowedOrigins(),
	})
}

// New builds the router from explicit dependencies. Plain JSON handlers are
// registered on a grpc-gateway ServeMux with HandlePath.
func New(d Deps) http.Handler {
	h := handlers{deps: d}
	mux := runtime.NewServeMux()

	routes := []struct {
		method, path string
		fn           runtime.HandlerFunc
	}{
		{http.MethodPost, "/functions/v1/revenuecat-purchase", h.verifyPurchase},
		{http.MethodPost, "/api/revenuecat-purchase", h.verifyPurchase},
		{http.MethodPost, "/functions/v1/revenuecat-webhook", h.receiveWebhook},
		{http.MethodPost, "/api/revenuecat-webhook", h.receiveWebhook},
		{http.MethodGet, "/api/subscription", h.getSubscription},
		{http.MethodPost, "/api/documents", h.createDocument},
		{http.MethodGet, "/api/documents", h.listDocuments},
		{http.MethodPost, "/api/documents/{id}/status", h.updateDocumentStatus},
		{http.MethodGet, "/health", h.health},
		{http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
			promhttp.Handler().ServeHTTP(w, r)
		}},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.path, rt.fn); err != nil {
			slog.Error("failed to register route", "method", rt.method, "path", rt.path, "err", err)
		}
	}

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	})
	return withRequestLogging(c.Handler(mux))
}
