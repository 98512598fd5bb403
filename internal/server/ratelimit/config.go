package ratelimit

import (
	"net/http"
	"time"
)

// EndpointConfig is the limit applied to one route. Paths ending in "/"
// match by prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused for this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds an enabled configuration. defaultLimit is per minute for
// routes without their own rule; strictLimit is per hour for the model-backed
// routes.
func NewConfig(defaultLimit, strictLimit int, whitelist, blacklist []string) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       toSet(whitelist),
		Blacklist:       toSet(blacklist),
		EndpointConfigs: DefaultEndpointConfigs(strictLimit),
	}
}

// DefaultEndpointConfigs returns the per-route limits.
func DefaultEndpointConfigs(strictLimit int) []EndpointConfig {
	strictBurst := min(strictLimit, 5)
	return []EndpointConfig{
		// Model calls.
		{Path: "/resumes/generate", Method: http.MethodPost, Limit: strictLimit, Window: time.Hour, Burst: strictBurst},
		{Path: "/resumes/feedback", Method: http.MethodPost, Limit: strictLimit, Window: time.Hour, Burst: strictBurst},

		// Rendering and uploads.
		{Path: "/resumes/export/", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/uploads/resume", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},

		// History writes.
		{Path: "/history", Method: http.MethodDelete, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/history/", Method: http.MethodDelete, Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if item != "" {
			set[item] = true
		}
	}
	return set
}
