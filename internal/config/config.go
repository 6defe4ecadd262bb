package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Payment operating modes. In offline mode the gateway adapter is
// never called: top-ups return a synthetic checkout URL and
// verification treats intents as paid. Meant for environments without
// live gateway access.
const (
	PaymentsModeLive    = "live"
	PaymentsModeOffline = "offline"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// PaymentsMode returns the configured payment operating mode.
func PaymentsMode() string {
	if GetEnv("PAYMENTS_MODE", PaymentsModeLive) == PaymentsModeOffline {
		return PaymentsModeOffline
	}
	return PaymentsModeLive
}

// CallRatePerMinute returns the configured per-minute call rate.
// Falls back to 50 when unset or unparseable.
func CallRatePerMinute() decimal.Decimal {
	raw := GetEnv("CALL_RATE_PER_MINUTE", "50")
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.Sign() <= 0 {
		log.Printf("invalid CALL_RATE_PER_MINUTE %q, using default 50", raw)
		return decimal.NewFromInt(50)
	}
	return rate
}

// MonnifyConfig carries the gateway endpoint and credentials.
type MonnifyConfig struct {
	BaseURL      string
	APIKey       string
	SecretKey    string
	ContractCode string
	RedirectURL  string
}

// Monnify returns the gateway configuration from the environment.
func Monnify() MonnifyConfig {
	return MonnifyConfig{
		BaseURL:      GetEnv("MONNIFY_BASE_URL", "https://sandbox.monnify.com"),
		APIKey:       GetEnv("MONNIFY_API_KEY", ""),
		SecretKey:    GetEnv("MONNIFY_SECRET_KEY", ""),
		ContractCode: GetEnv("MONNIFY_CONTRACT_CODE", ""),
		RedirectURL:  GetEnv("MONNIFY_REDIRECT_URL", ""),
	}
}
