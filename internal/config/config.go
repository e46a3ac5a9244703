package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string

	// HTTPTimeout bounds each outbound provider call (0 = no timeout).
	HTTPTimeout time.Duration
	// ProviderBreaker wraps provider calls in a circuit breaker.
	ProviderBreaker bool
	ForecastDays    int

	// HomeCity is shown as the caller's current location on the home view.
	HomeCity string

	// ProbeCities are checked every ProbeInterval (0 = probe disabled).
	ProbeCities   []string
	ProbeInterval time.Duration

	// DatabaseURL selects the Postgres store; empty keeps data in memory.
	DatabaseURL string

	JWTSecret                 string
	FavoritesEnforceOwnership bool

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.WeatherAPIBaseURL = getenvDefault("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1")

	timeout, err := getenvDuration("PROVIDER_HTTP_TIMEOUT", "0s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout
	cfg.ProviderBreaker = getenvBool("PROVIDER_BREAKER", false)

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 3)
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 14 {
		return nil, fmt.Errorf("invalid FORECAST_DAYS: %d (must be 1-14)", cfg.ForecastDays)
	}

	cfg.HomeCity = getenvDefault("HOME_CITY", "Liberec")
	cfg.ProbeCities = splitList(getenvDefault("PROBE_CITIES", cfg.HomeCity))

	// Probe interval: default 15 minutes.
	interval, err := getenvDuration("PROBE_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	if interval < 0 {
		return nil, fmt.Errorf("invalid PROBE_INTERVAL: %s", interval)
	}
	cfg.ProbeInterval = interval

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Printf("INFO: JWT_SECRET is not set; every caller will be anonymous")
	}
	cfg.FavoritesEnforceOwnership = getenvBool("FAVORITES_ENFORCE_OWNERSHIP", false)

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
