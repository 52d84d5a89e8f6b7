// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/smartreceipt/backend/internal/insights"
)

type Config struct {
	// Backend selection
	Backend string

	// SQLite
	DBPath string

	// Firestore
	FirestoreProject    string
	FirestoreCollection string

	// Insight cache
	InsightTTL time.Duration

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Backend: getEnv("SMARTRECEIPT_BACKEND", "sqlite"),
		DBPath:  getEnv("SMARTRECEIPT_DB_PATH", "./data/smartreceipt.db"),

		FirestoreProject:    getEnv("SMARTRECEIPT_FIRESTORE_PROJECT", ""),
		FirestoreCollection: getEnv("SMARTRECEIPT_FIRESTORE_COLLECTION", "slots"),

		InsightTTL: getEnvDuration("SMARTRECEIPT_INSIGHT_TTL", insights.DefaultTTL),

		LogLevel: getEnv("SMARTRECEIPT_LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns an error listing every
// problem found. It never touches the filesystem; the sqlite backend creates
// its own directory on open.
func (c *Config) Validate() error {
	var errs []string

	switch c.Backend {
	case "memory", "sqlite", "firestore":
	default:
		errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of [memory sqlite firestore]", c.Backend))
	}

	if c.Backend == "sqlite" && c.DBPath == "" {
		errs = append(errs, "database path cannot be empty when using the sqlite backend")
	}

	if c.Backend == "firestore" {
		if c.FirestoreProject == "" {
			errs = append(errs, "SMARTRECEIPT_FIRESTORE_PROJECT is required when using the firestore backend")
		}
		if c.FirestoreCollection == "" {
			errs = append(errs, "Firestore collection name cannot be empty")
		}
	}

	if c.InsightTTL <= 0 {
		errs = append(errs, fmt.Sprintf("invalid insight TTL %v: must be positive", c.InsightTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
