package config

import (
	"reflect"
	"testing"
	"time"
)

var allKeys = []string{
	"WEATHERAPI_API_KEY", "WEATHERAPI_BASE_URL", "PROVIDER_HTTP_TIMEOUT",
	"PROVIDER_BREAKER", "FORECAST_DAYS", "HOME_CITY", "PROBE_CITIES",
	"PROBE_INTERVAL", "DATABASE_URL", "JWT_SECRET",
	"FAVORITES_ENFORCE_OWNERSHIP", "PORT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WeatherAPIBaseURL != "https://api.weatherapi.com/v1" {
		t.Errorf("base url = %q", cfg.WeatherAPIBaseURL)
	}
	if cfg.HTTPTimeout != 0 || cfg.ProviderBreaker {
		t.Errorf("provider resilience must be off by default: %+v", cfg)
	}
	if cfg.ForecastDays != 3 {
		t.Errorf("forecast days = %d, want 3", cfg.ForecastDays)
	}
	if cfg.HomeCity != "Liberec" {
		t.Errorf("home city = %q, want Liberec", cfg.HomeCity)
	}
	if !reflect.DeepEqual(cfg.ProbeCities, []string{"Liberec"}) {
		t.Errorf("probe cities = %v, want [Liberec]", cfg.ProbeCities)
	}
	if cfg.ProbeInterval != 15*time.Minute {
		t.Errorf("probe interval = %s, want 15m", cfg.ProbeInterval)
	}
	if cfg.DatabaseURL != "" || cfg.FavoritesEnforceOwnership {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHERAPI_API_KEY", "key")
	t.Setenv("WEATHERAPI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("PROVIDER_HTTP_TIMEOUT", "5s")
	t.Setenv("PROVIDER_BREAKER", "true")
	t.Setenv("FORECAST_DAYS", "7")
	t.Setenv("HOME_CITY", "Prague")
	t.Setenv("PROBE_CITIES", "Paris, Berlin,,Rome ")
	t.Setenv("PROBE_INTERVAL", "0")
	t.Setenv("DATABASE_URL", "postgres://localhost/weather")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("FAVORITES_ENFORCE_OWNERSHIP", "1")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &AppConfig{
		WeatherAPIKey:             "key",
		WeatherAPIBaseURL:         "http://localhost:9999/v1",
		HTTPTimeout:               5 * time.Second,
		ProviderBreaker:           true,
		ForecastDays:              7,
		HomeCity:                  "Prague",
		ProbeCities:               []string{"Paris", "Berlin", "Rome"},
		ProbeInterval:             0,
		DatabaseURL:               "postgres://localhost/weather",
		JWTSecret:                 "s3cret",
		FavoritesEnforceOwnership: true,
		Port:                      "9090",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PROVIDER_HTTP_TIMEOUT": "soon",
		"PROBE_INTERVAL":        "-1m",
		"FORECAST_DAYS":         "15",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected an error for %s=%s", key, value)
			}
		})
	}
}
