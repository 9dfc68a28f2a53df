package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                       string
	PostgresDSN                string
	SellerEmail                string
	SellerPassword             string
	StripeSecretKey            string
	StripeWebhookSecret        string
	StripeBaseURL              string
	Currency                   string
	SessionPurgeIntervalMinute int
}

// LoadConfig reads a local .env file when present, then environment
// variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                envDefault("PORT", "8080"),
		PostgresDSN:         strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SellerEmail:         strings.TrimSpace(os.Getenv("SELLER_EMAIL")),
		SellerPassword:      os.Getenv("SELLER_PASSWORD"),
		StripeSecretKey:     strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripeWebhookSecret: strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET")),
		StripeBaseURL:       strings.TrimSpace(os.Getenv("STRIPE_BASE_URL")),
		Currency:            envDefault("CURRENCY", "usd"),
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_PURGE_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("SESSION_PURGE_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.SessionPurgeIntervalMinute = minutes
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
