package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds the global application configuration
var AppConfig *Config

// Config holds the application configuration
type Config struct {
	DatabaseURL             string
	RevenueCatSecretKey     string
	RevenueCatWebhookSecret string
	SupabaseJWTSecret       string
	// RevenueCat REST base URL, overridable for tests and proxies
	RevenueCatAPIURL string
	AppUserIDPrefix  string
	// When set, the webhook must carry Authorization equal to RevenueCatWebhookSecret
	WebhookVerifyAuthorization bool
	CORSAllowedOrigins         string
	// Optional: base URL for running remote HTTP integration tests (e.g., https://api.example.com)
	IntegrationBaseURL string
	// Server ports
	HTTPPort string
	GRPCPort string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}

	// Try to load .env file from current directory and parent directories
	currentDir, _ := os.Getwd()
	for currentDir != "/" && currentDir != "." {
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err = godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("failed to load .env file: %v", err)
			}
			break
		}
		currentDir = filepath.Dir(currentDir)
	}

	vars := []struct {
		name     string
		envVar   string
		display  string
		required bool
	}{
		{"DatabaseURL", "DATABASE_URL", "Database URL", true},
		{"RevenueCatSecretKey", "REVENUECAT_SECRET_KEY", "RevenueCat Secret Key", true},
		{"RevenueCatWebhookSecret", "REVENUECAT_WEBHOOK_SECRET", "RevenueCat Webhook Secret", true},
		{"SupabaseJWTSecret", "SUPABASE_JWT_SECRET", "Supabase JWT Secret", true},
		{"RevenueCatAPIURL", "REVENUECAT_API_URL", "RevenueCat API URL", false},
		{"AppUserIDPrefix", "APP_USER_ID_PREFIX", "App User ID Prefix", false},
		{"WebhookVerifyAuthorization", "WEBHOOK_VERIFY_AUTHORIZATION", "Webhook Verify Authorization", false},
		{"CORSAllowedOrigins", "CORS_ALLOWED_ORIGINS", "CORS Allowed Origins", false},
		// Optional integration base URL for remote tests
		{"IntegrationBaseURL", "INTEGRATION_BASE_URL", "Integration Base URL", false},
		{"HTTPPort", "PORT", "HTTP Port", false},
		{"GRPCPort", "GRPC_PORT", "gRPC Port", false},
	}

	for _, v := range vars {
		value := strings.TrimSpace(os.Getenv(v.envVar))
		if v.required && value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", v.display)
		}
		field := reflect.ValueOf(config).Elem().FieldByName(v.name)
		switch field.Kind() {
		case reflect.Bool:
			if value == "" {
				continue
			}
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid value for %s: %q", v.display, value)
			}
			field.SetBool(b)
		default:
			field.SetString(value)
		}
	}

	// Defaults
	if config.RevenueCatAPIURL == "" {
		config.RevenueCatAPIURL = DefaultRevenueCatAPIURL
	}
	if config.AppUserIDPrefix == "" {
		config.AppUserIDPrefix = DefaultAppUserIDPrefix
	}
	if config.CORSAllowedOrigins == "" {
		config.CORSAllowedOrigins = "*"
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	if config.GRPCPort == "" {
		config.GRPCPort = "50051"
	}

	return config, nil
}

// AllowedOrigins splits CORSAllowedOrigins into its non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
