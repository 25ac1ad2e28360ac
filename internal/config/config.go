package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration, loaded from environment
// variables with development defaults.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	LogLevel  string // debug, info, warn, error
	LogFormat string // json or console

	CORSOrigins []string

	// Routing and signal providers
	OSRMBaseURL      string
	OverpassBaseURL  string
	NominatimBaseURL string
	TomTomBaseURL    string
	TomTomAPIKey     string

	RoutingTimeout  time.Duration
	ProviderTimeout time.Duration

	// Rate limiting
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load loads configuration from the environment.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/saferoute.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),

		OSRMBaseURL:      getEnv("OSRM_BASE_URL", "http://router.project-osrm.org"),
		OverpassBaseURL:  getEnv("OVERPASS_BASE_URL", "https://overpass-api.de"),
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		TomTomBaseURL:    getEnv("TOMTOM_BASE_URL", "https://api.tomtom.com"),
		TomTomAPIKey:     getEnv("TOMTOM_API_KEY", ""),

		RoutingTimeout:  getDurationEnv("ROUTING_TIMEOUT", 30*time.Second),
		ProviderTimeout: getDurationEnv("PROVIDER_TIMEOUT", 15*time.Second),

		RateLimit:       getIntEnv("RATE_LIMIT", 120),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
