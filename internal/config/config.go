// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/intelliresume/internal/history"
	"github.com/jonathan/intelliresume/internal/llm"
	"github.com/jonathan/intelliresume/internal/types"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey           = "GEMINI_API_KEY"
	EnvDatabaseURL      = "DATABASE_URL"
	EnvHistoryPath      = "INTELLIRESUME_HISTORY_PATH"
	EnvModel            = "INTELLIRESUME_MODEL"
	EnvPort             = "PORT"
	EnvChromePath       = "INTELLIRESUME_CHROME_PATH"
	EnvLogLevel         = "INTELLIRESUME_LOG_LEVEL"
	EnvRateLimitEnabled = "RATE_LIMIT_ENABLED"
	EnvRateLimitDefault = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvRateLimitStrict  = "RATE_LIMIT_STRICT_LIMIT"
	EnvRateLimitAllow   = "RATE_LIMIT_WHITELIST"
	EnvRateLimitDeny    = "RATE_LIMIT_BLACKLIST"
)

// Defaults applied by MergeWithDefaults.
const (
	DefaultPort                = 8080
	DefaultContentTemperature  = 0.6
	DefaultFeedbackTemperature = 0.7
	DefaultPDFTimeout          = 30 * time.Second
	DefaultRateLimit           = 300 // requests per minute per client
	DefaultStrictRateLimit     = 20  // model calls per hour per client
)

// RateLimit configures per-client request limits for the HTTP server.
type RateLimit struct {
	Disabled     bool     `json:"disabled,omitempty"`
	DefaultLimit int      `json:"default_limit,omitempty"` // requests per minute
	StrictLimit  int      `json:"strict_limit,omitempty"`  // generate/feedback calls per hour
	Whitelist    []string `json:"whitelist,omitempty"`
	Blacklist    []string `json:"blacklist,omitempty"`
}

// Config is the application configuration. Every field is optional in the
// JSON file; MergeWithDefaults fills the gaps.
type Config struct {
	// Model
	APIKey              string  `json:"api_key,omitempty"`
	Model               string  `json:"model,omitempty"` // overrides the model id for Tier
	Tier                string  `json:"tier,omitempty"`  // lite, standard, advanced
	ContentTemperature  float32 `json:"content_temperature,omitempty"`
	FeedbackTemperature float32 `json:"feedback_temperature,omitempty"`

	// History
	DatabaseURL     string `json:"database_url,omitempty"` // PostgreSQL; wins over HistoryPath
	HistoryPath     string `json:"history_path,omitempty"`
	HistoryCapacity int    `json:"history_capacity,omitempty"`

	// Rendering
	Template          string `json:"template,omitempty"`
	ChromePath        string `json:"chrome_path,omitempty"`
	PDFTimeoutSeconds int    `json:"pdf_timeout_seconds,omitempty"`

	// Server
	Port      int       `json:"port,omitempty"`
	RateLimit RateLimit `json:"rate_limit,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // color, text, json
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: the optional JSON file, then the
// environment, then defaults. Command-line flags are applied by the caller.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	return &merged, nil
}

// ApplyEnv overrides fields with the non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString(EnvAPIKey, &c.APIKey)
	setString(EnvDatabaseURL, &c.DatabaseURL)
	setString(EnvHistoryPath, &c.HistoryPath)
	setString(EnvModel, &c.Model)
	setString(EnvChromePath, &c.ChromePath)
	setString(EnvLogLevel, &c.LogLevel)

	if err := setInt(EnvPort, &c.Port); err != nil {
		return err
	}
	if err := setInt(EnvRateLimitDefault, &c.RateLimit.DefaultLimit); err != nil {
		return err
	}
	if err := setInt(EnvRateLimitStrict, &c.RateLimit.StrictLimit); err != nil {
		return err
	}

	if v := strings.TrimSpace(getenv(EnvRateLimitEnabled)); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a boolean: %w", EnvRateLimitEnabled, err)
		}
		c.RateLimit.Disabled = !enabled
	}
	if v := getenv(EnvRateLimitAllow); v != "" {
		c.RateLimit.Whitelist = splitList(v)
	}
	if v := getenv(EnvRateLimitDeny); v != "" {
		c.RateLimit.Blacklist = splitList(v)
	}

	return nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Tier:                string(llm.TierStandard),
		ContentTemperature:  DefaultContentTemperature,
		FeedbackTemperature: DefaultFeedbackTemperature,
		HistoryPath:         DefaultHistoryPath(),
		HistoryCapacity:     history.DefaultCapacity,
		Template:            string(types.DefaultTemplate),
		PDFTimeoutSeconds:   int(DefaultPDFTimeout / time.Second),
		Port:                DefaultPort,
		RateLimit: RateLimit{
			DefaultLimit: DefaultRateLimit,
			StrictLimit:  DefaultStrictRateLimit,
		},
		LogLevel:  "info",
		LogFormat: "color",
	}
}

// DefaultHistoryPath is the history file under the user's config directory,
// or a file in the working directory when that cannot be determined.
func DefaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "intelliresume_history.json"
	}
	return filepath.Join(dir, "intelliresume", "history.json")
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// A zero temperature counts as unset.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Tier == "" {
		result.Tier = defaults.Tier
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.HistoryPath == "" {
		result.HistoryPath = defaults.HistoryPath
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.ContentTemperature == 0 {
		result.ContentTemperature = defaults.ContentTemperature
	}
	if result.FeedbackTemperature == 0 {
		result.FeedbackTemperature = defaults.FeedbackTemperature
	}
	if result.HistoryCapacity == 0 {
		result.HistoryCapacity = defaults.HistoryCapacity
	}
	if result.PDFTimeoutSeconds == 0 {
		result.PDFTimeoutSeconds = defaults.PDFTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimit.DefaultLimit == 0 {
		result.RateLimit.DefaultLimit = defaults.RateLimit.DefaultLimit
	}
	if result.RateLimit.StrictLimit == 0 {
		result.RateLimit.StrictLimit = defaults.RateLimit.StrictLimit
	}

	// Disabled cannot distinguish unset from false, so it is not merged.
	return result
}

// Validate checks that the configuration has valid values. It does not
// require an API key; commands that call the model check that themselves.
func (c *Config) Validate() error {
	if c.Tier != "" {
		switch llm.ModelTier(c.Tier) {
		case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
		default:
			return fmt.Errorf("config error: 'tier' must be one of lite, standard, advanced (got %q)", c.Tier)
		}
	}
	if err := checkTemperature("content_temperature", c.ContentTemperature); err != nil {
		return err
	}
	if err := checkTemperature("feedback_temperature", c.FeedbackTemperature); err != nil {
		return err
	}

	if c.HistoryCapacity < 0 {
		return fmt.Errorf("config error: 'history_capacity' must be non-negative")
	}
	if c.PDFTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'pdf_timeout_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.RateLimit.DefaultLimit < 0 || c.RateLimit.StrictLimit < 0 {
		return fmt.Errorf("config error: rate limits must be non-negative")
	}

	if c.Template != "" {
		if _, err := types.ParseTemplateID(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.ChromePath)
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "color", "text", "json":
	default:
		return fmt.Errorf("config error: unknown log format %q", c.LogFormat)
	}

	return nil
}

// LLMConfig returns the model table with Model applied to the configured tier.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Model != "" {
		cfg = cfg.WithModel(c.ModelTier(), c.Model)
	}
	return cfg
}

// ModelTier returns the configured tier, defaulting to standard.
func (c *Config) ModelTier() llm.ModelTier {
	return llm.ParseTier(c.Tier)
}

// PDFTimeout returns the PDF render timeout as a duration.
func (c *Config) PDFTimeout() time.Duration {
	if c.PDFTimeoutSeconds <= 0 {
		return DefaultPDFTimeout
	}
	return time.Duration(c.PDFTimeoutSeconds) * time.Second
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func checkTemperature(name string, v float32) error {
	if v < 0 || v > 2 {
		return fmt.Errorf("config error: '%s' must be between 0 and 2", name)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
