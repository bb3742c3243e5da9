package config

import (
	"log"
	"os"
	"strings"
)

const (
	// ProdDbId is the identifier for the production database
	ProdDbId = "tenderguard-prod"

	// DefaultAppUserIDPrefix turns a local user id into a RevenueCat app_user_id
	DefaultAppUserIDPrefix = "tenderguard_"

	DefaultRevenueCatAPIURL = "https://api.revenuecat.com/v1"
)

// CheckNotProdDB aborts immediately if the configured database URL contains ProdDbId.
// This should be called at the start of any test that interacts with the database.
func CheckNotProdDB() {
	dsn := os.Getenv("DATABASE_URL")
	if AppConfig != nil && AppConfig.DatabaseURL != "" {
		dsn = AppConfig.DatabaseURL
	}
	if dsn == "" {
		log.Fatal("DatabaseURL is not configured")
	}
	if strings.Contains(dsn, ProdDbId) {
		log.Fatalf("Tests aborted: DatabaseURL contains production identifier %s", ProdDbId)
	}
}
