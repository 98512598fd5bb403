// Package llm wraps the Gemini text-completion API behind a small client
// interface so callers can be tested with a fake.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short, cheap completions
	TierLite ModelTier = "lite"
	// TierStandard is used for resume generation and feedback
	TierStandard ModelTier = "standard"
	// TierAdvanced is for callers that opt into the most capable model
	TierAdvanced ModelTier = "advanced"
)

// ParseTier maps a tier name to a ModelTier; unknown names yield TierStandard.
func ParseTier(s string) ModelTier {
	switch ModelTier(s) {
	case TierLite, TierAdvanced:
		return ModelTier(s)
	default:
		return TierStandard
	}
}

// Config holds the model configuration for the application
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Models: make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
