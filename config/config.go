/*
Package config loads server configuration from the environment.

A .env file, when present, is loaded first (godotenv); real environment
variables win over it. Every value has a default so the server runs with
no configuration at all.

VARIABLES:
  PORT              HTTP server port (default: 8080)
  DB_PATH           SQLite database path (default: timeclock.db)
  SETTINGS_PATH     Organization settings JSON file (default: none)
  SCHEDULER_ENABLED Background recompute job on/off (default: true)
  SCHEDULER_INTERVAL Check interval, Go duration (default: 1h)
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	Port         int
	DBPath       string
	SettingsPath string

	SchedulerEnabled  bool
	SchedulerInterval time.Duration
}

// Load reads the .env file (if any) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the defaults cover everything.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	enabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_ENABLED: %w", err)
	}

	interval, err := time.ParseDuration(getEnv("SCHEDULER_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_INTERVAL: %w", err)
	}

	return &Config{
		Port:              port,
		DBPath:            getEnv("DB_PATH", "timeclock.db"),
		SettingsPath:      getEnv("SETTINGS_PATH", ""),
		SchedulerEnabled:  enabled,
		SchedulerInterval: interval,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
