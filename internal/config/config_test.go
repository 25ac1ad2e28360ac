package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "./data/saferoute.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "http://router.project-osrm.org", cfg.OSRMBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RoutingTimeout)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Empty(t, cfg.TomTomAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("CORS_ORIGINS", "https://app.example.com,https://admin.example.com")
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("TOMTOM_API_KEY", "k")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "k", cfg.TomTomAPIKey)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "not-a-number")
	t.Setenv("ROUTING_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RoutingTimeout)
}
