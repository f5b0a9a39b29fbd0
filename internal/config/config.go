package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	TelegramToken  string
	DatabaseURL    string
	DatabaseDriver string
	LogLevel       string
	PrometheusPort string
	Port           string
	StatsInterval  time.Duration
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DatabaseDriver: getEnvOrDefault("DATABASE_DRIVER", DriverPostgres),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		PrometheusPort: getEnvOrDefault("PROMETHEUS_PORT", "9090"),
		Port:           getEnvOrDefault("PORT", "8080"),
	}

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	interval, err := time.ParseDuration(getEnvOrDefault("STATS_INTERVAL", "1m"))
	if err != nil || interval <= 0 {
		return nil, fmt.Errorf("STATS_INTERVAL must be a positive duration, got %q", os.Getenv("STATS_INTERVAL"))
	}
	cfg.StatsInterval = interval

	if cfg.DatabaseDriver != DriverPostgres && cfg.DatabaseDriver != DriverSQLite {
		return nil, fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q",
			DriverPostgres, DriverSQLite, cfg.DatabaseDriver)
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
