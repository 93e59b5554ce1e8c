package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// maxBackoff matches the provider client's cap between retries.
const maxBackoff = 5 * time.Second

type AppConfig struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string

	// Upstream request bound and automatic retries (0 = none).
	UpstreamTimeout    time.Duration
	UpstreamMaxRetries int

	CacheTTL time.Duration

	// PollInterval controls how often favorite cities are refreshed (0 disables).
	PollInterval time.Duration

	DefaultUnit weather.Unit

	// PrefsDBPath is the sqlite file for favorites and settings; empty keeps them in memory.
	PrefsDBPath string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	// A missing key is reported by the provider on first use.
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.WeatherAPIBaseURL = getenvDefault("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1")

	var err error
	if cfg.UpstreamTimeout, err = getenvDuration("UPSTREAM_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout == 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: must be positive")
	}
	if cfg.UpstreamMaxRetries, err = getenvInt("UPSTREAM_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.UpstreamMaxRetries < 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_MAX_RETRIES: must not be negative")
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "60s"); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getenvDuration("POLL_INTERVAL", "60s"); err != nil {
		return nil, err
	}

	unit, err := weather.ParseUnit(getenvDefault("DEFAULT_UNIT", string(weather.Metric)))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNIT: %w", err)
	}
	cfg.DefaultUnit = unit

	cfg.PrefsDBPath = os.Getenv("PREFS_DB_PATH")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// FetchTimeout bounds one cached upstream fetch: every attempt may use the
// full request timeout, plus the capped backoff between retries.
func (c *AppConfig) FetchTimeout() time.Duration {
	attempts := time.Duration(c.UpstreamMaxRetries + 1)
	return attempts*c.UpstreamTimeout + time.Duration(c.UpstreamMaxRetries)*maxBackoff
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
