// Package config handles loading application configuration from environment
// variables. Defaults suit a local content server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all settings for the hexref CLI.
type Config struct {
	// Env is the runtime environment ("development" or "production").
	Env string

	// LogLevel is one of debug, info, warn or error.
	LogLevel string

	// ContentRoot is the base URL the data/ tree is served from.
	ContentRoot string

	// LoadQuery is the default query string for a load, e.g. "lang=es&module=salvage".
	LoadQuery string

	Fetch     FetchConfig
	Honeycomb HoneycombConfig
}

// FetchConfig controls the transport retry policy.
type FetchConfig struct {
	MaxRetries     int
	RetryBaseDelay time.Duration
	Timeout        time.Duration
}

// HoneycombConfig holds the trace exporter credentials. Tracing is disabled
// when APIKey is empty.
type HoneycombConfig struct {
	APIKey   string
	Dataset  string
	Endpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ContentRoot: getEnv("CONTENT_ROOT", "http://localhost:8000/"),
		LoadQuery:   getEnv("LOAD_QUERY", ""),

		Fetch: FetchConfig{
			MaxRetries:     getEnvInt("FETCH_MAX_RETRIES", 3),
			RetryBaseDelay: getEnvDuration("FETCH_RETRY_BASE_DELAY", time.Second),
			Timeout:        getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		},

		Honeycomb: HoneycombConfig{
			APIKey:   getEnv("HONEYCOMB_HEXREF_API_KEY", ""),
			Dataset:  getEnv("HONEYCOMB_HEXREF_DATASET", "hexref"),
			Endpoint: getEnv("HONEYCOMB_HEXREF_ENDPOINT", ""),
		},
	}

	if cfg.ContentRoot == "" {
		return nil, fmt.Errorf("CONTENT_ROOT must not be empty")
	}
	if cfg.Fetch.MaxRetries < 0 {
		return nil, fmt.Errorf("FETCH_MAX_RETRIES must be >= 0, got %d", cfg.Fetch.MaxRetries)
	}
	if cfg.Fetch.RetryBaseDelay <= 0 {
		return nil, fmt.Errorf("FETCH_RETRY_BASE_DELAY must be positive, got %s", cfg.Fetch.RetryBaseDelay)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// TracingEnabled reports whether Honeycomb credentials are configured.
func (c *Config) TracingEnabled() bool {
	return c.Honeycomb.APIKey != ""
}

// getEnv reads an env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "250ms") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
