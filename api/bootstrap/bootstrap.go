package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tbeaudouin05/tenderguard-api/api/config"
	"github.com/tbeaudouin05/tenderguard-api/api/database"
	docapp "github.com/tbeaudouin05/tenderguard-api/api/services/documents/app"
	docdb "github.com/tbeaudouin05/tenderguard-api/api/services/documents/db"
	rcapp "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/app"
	rcdb "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/db"
	rcgw "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/gateway/revenuecat"
)

const migrateTimeout = 30 * time.Second

var (
	service   rcapp.Service
	documents docapp.Service
	store     *rcdb.Store
	initOnce  sync.Once
	initErr   error
)

// Init loads config, opens and migrates the database, and wires the billing and documents services.
func Init() error {
	// If a service has already been injected (e.g., tests), do not override or init heavy deps.
	if service != nil {
		return nil
	}
	var err error
	if config.AppConfig == nil {
		config.AppConfig, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg := config.AppConfig

	if err := database.Initialize(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()
	if err := database.Migrate(ctx, database.GetDB()); err != nil {
		return err
	}

	store = rcdb.NewStore(database.GetDB())
	service = rcapp.NewService(store, rcgw.New(cfg.RevenueCatAPIURL, cfg.RevenueCatSecretKey), rcapp.Options{
		AppUserIDPrefix: cfg.AppUserIDPrefix,
		WebhookSecret:   cfg.RevenueCatWebhookSecret,
	})
	documents = docapp.NewService(docdb.NewStore(database.GetDB()))
	return nil
}

func GetService() rcapp.Service { return service }

// SetService allows tests to inject a stub implementation.
func SetService(s rcapp.Service) { service = s }

func GetDocuments() docapp.Service { return documents }

// SetDocuments allows tests to inject a stub documents service.
func SetDocuments(s docapp.Service) { documents = s }

// Health pings the database behind the wired store.
func Health(ctx context.Context) error {
	if store == nil {
		return errors.New("database not initialized")
	}
	return store.Ping(ctx)
}

// Ensure runs Init() once per process and returns any initialization error.
func Ensure() error {
	initOnce.Do(func() {
		initErr = Init()
	})
	return initErr
}
