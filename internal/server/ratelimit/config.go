package ratelimit

import (
	"net/http"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string // exact path, or a prefix when it ends in "/"
	Method string
	Limit  int // requests per Window; zero or less means unlimited
	Window time.Duration
	Burst  int // bucket capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused bucket is kept before cleanup drops it.
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromConfig builds the limiter configuration from application settings.
// POST /analyze gets its own limit; GET /health is never limited.
func FromConfig(cfg config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         cfg.Enabled,
		DefaultLimit:    cfg.DefaultLimit,
		DefaultWindow:   cfg.DefaultWindow,
		CleanupInterval: cfg.CleanupInterval,
		IdleTTL:         time.Hour,
		Whitelist:       toSet(cfg.Whitelist),
		Blacklist:       toSet(cfg.Blacklist),
		EndpointConfigs: []EndpointConfig{
			{Path: "/analyze", Method: http.MethodPost, Limit: cfg.AnalyzeLimit, Window: cfg.AnalyzeWindow, Burst: cfg.AnalyzeBurst},
			{Path: "/health", Method: http.MethodGet, Limit: 0},
		},
	}
}

// DefaultConfig returns the limiter configuration for default application settings.
func DefaultConfig() *Config {
	return FromConfig(config.Default().RateLimit)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
