package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"WEATHERAPI_API_KEY", "WEATHERAPI_BASE_URL", "UPSTREAM_TIMEOUT", "UPSTREAM_MAX_RETRIES",
		"CACHE_TTL", "POLL_INTERVAL", "DEFAULT_UNIT", "PREFS_DB_PATH", "PORT",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WeatherAPIBaseURL != "https://api.weatherapi.com/v1" {
		t.Errorf("base url = %q", cfg.WeatherAPIBaseURL)
	}
	if cfg.UpstreamTimeout != 10*time.Second || cfg.UpstreamMaxRetries != 0 {
		t.Errorf("upstream = %v / %d", cfg.UpstreamTimeout, cfg.UpstreamMaxRetries)
	}
	if cfg.CacheTTL != time.Minute || cfg.PollInterval != time.Minute {
		t.Errorf("ttl/poll = %v / %v", cfg.CacheTTL, cfg.PollInterval)
	}
	if cfg.DefaultUnit != weather.Metric || cfg.Port != "8080" || cfg.PrefsDBPath != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WEATHERAPI_API_KEY", "abc")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("UPSTREAM_MAX_RETRIES", "2")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("POLL_INTERVAL", "0s")
	t.Setenv("DEFAULT_UNIT", "imperial")
	t.Setenv("PREFS_DB_PATH", "/tmp/prefs.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WeatherAPIKey != "abc" || cfg.UpstreamTimeout != 3*time.Second || cfg.UpstreamMaxRetries != 2 {
		t.Errorf("unexpected upstream config %+v", cfg)
	}
	if cfg.CacheTTL != 30*time.Second || cfg.PollInterval != 0 {
		t.Errorf("unexpected ttl/poll %v / %v", cfg.CacheTTL, cfg.PollInterval)
	}
	if cfg.DefaultUnit != weather.Imperial || cfg.PrefsDBPath != "/tmp/prefs.db" {
		t.Errorf("unexpected prefs config %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"UPSTREAM_TIMEOUT":     "soon",
		"UPSTREAM_TIMEOUT=0":   "0s",
		"UPSTREAM_MAX_RETRIES": "-1",
		"CACHE_TTL":            "-5s",
		"DEFAULT_UNIT":         "kelvin",
	}

	for name, val := range tests {
		t.Run(name, func(t *testing.T) {
			key, _, _ := strings.Cut(name, "=")
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}

func TestLoadInvalidUnitWraps(t *testing.T) {
	t.Setenv("DEFAULT_UNIT", "kelvin")
	_, err := Load()
	if !errors.Is(err, weather.ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	cfg := &AppConfig{UpstreamTimeout: 10 * time.Second}
	if got := cfg.FetchTimeout(); got != 10*time.Second {
		t.Errorf("no retries: got %v, want 10s", got)
	}

	cfg.UpstreamMaxRetries = 2
	if got := cfg.FetchTimeout(); got != 40*time.Second {
		t.Errorf("two retries: got %v, want 40s", got)
	}
}
