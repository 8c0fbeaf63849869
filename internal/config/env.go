package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from the environment. A .env file in the
// working directory is loaded first if present; real environment variables
// win over .env entries (godotenv does not override existing vars).
//
// Recognized variables:
//
//	NOTESNAP_BACKEND            "postgres" | "file"
//	NOTESNAP_DATABASE_DSN       PostgreSQL DSN
//	NOTESNAP_DATA_DIR           file backend data directory
//	NOTESNAP_ENCRYPTION_KEY     secret for per-user key derivation
//	NOTESNAP_SESSION_VALIDITY   duration, e.g. "24h"
//	NOTESNAP_RATE_LIMIT_MAX     integer
//	NOTESNAP_RATE_LIMIT_WINDOW  duration, e.g. "5m"
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("NOTESNAP_BACKEND"); v != "" {
		config.Backend = Backend(v)
	}
	if v := os.Getenv("NOTESNAP_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("NOTESNAP_DATA_DIR"); v != "" {
		config.DataDir = v
	}
	if v := os.Getenv("NOTESNAP_ENCRYPTION_KEY"); v != "" {
		config.EncryptionSecret = v
	}
	if v := os.Getenv("NOTESNAP_SESSION_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionValidity = d
		}
	}
	if v := os.Getenv("NOTESNAP_RATE_LIMIT_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.RateLimitMax = n
		}
	}
	if v := os.Getenv("NOTESNAP_RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RateLimitWindow = d
		}
	}
}
