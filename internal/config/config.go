package config

import (
	"os"
	"strconv"
	"time"

	"github.com/mcoutinho/retail-ledger-go/internal/domain"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Ledger policy
	WithdrawalLimit decimal.Decimal // per-withdrawal limit for current accounts
	WithdrawalCap   int             // lifetime withdrawal count per account

	// Observability
	OTLPEndpoint string

	// Auth. Auth routes are disabled when AdminPasswordHash is empty.
	AdminUser         string
	AdminPasswordHash string // bcrypt hash of the operator password
	JWTSecret         string
	JWTAccessTTL      time.Duration
}

// LoadDotEnv reads a .env file into the environment for local development.
// Existing env vars take precedence.
func LoadDotEnv(path string) error {
	return godotenv.Load(path)
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		WithdrawalLimit: getEnvDecimal("WITHDRAWAL_LIMIT", domain.DefaultWithdrawalLimit),
		WithdrawalCap:   getEnvInt("WITHDRAWAL_CAP", domain.DefaultWithdrawalCap),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		AdminUser:         getEnv("ADMIN_USER", "operator"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", "ledger-default-dev-secret-change-me"),
		JWTAccessTTL:      getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}
