package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/intelliresume/internal/logging"
	"google.golang.org/api/option"
)

// ErrMissingAPIKey is returned when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("API key is missing")

// MIMEJSON asks the model for a JSON-only reply.
const MIMEJSON = "application/json"

// Options controls a single completion call.
type Options struct {
	Tier        ModelTier
	Temperature float32
}

// Client is the text-completion boundary used by the generators.
type Client interface {
	// GenerateText returns free-form text.
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)
	// GenerateJSON returns the raw reply to a request made with the JSON MIME type.
	// The reply is not cleaned or parsed.
	GenerateJSON(ctx context.Context, prompt string, opts Options) (string, error)
	// GetModel returns the model name used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateText generates free-form text.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	return c.generate(ctx, prompt, opts, "")
}

// GenerateJSON generates a reply constrained to the JSON MIME type.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, opts Options) (string, error) {
	return c.generate(ctx, prompt, opts, MIMEJSON)
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, opts Options, mimeType string) (string, error) {
	modelName := c.config.GetModel(opts.Tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", opts.Tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(opts.Temperature)
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	logUsage(ctx, modelName, resp, time.Since(start))

	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func logUsage(ctx context.Context, model string, resp *genai.GenerateContentResponse, elapsed time.Duration) {
	attrs := []slog.Attr{
		slog.String("model", model),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if resp != nil && resp.UsageMetadata != nil {
		attrs = append(attrs,
			slog.Int("input_tokens", int(resp.UsageMetadata.PromptTokenCount)),
			slog.Int("output_tokens", int(resp.UsageMetadata.CandidatesTokenCount)),
			slog.Int("total_tokens", int(resp.UsageMetadata.TotalTokenCount)),
		)
	}
	logging.FromContext(ctx).LogAttrs(ctx, slog.LevelInfo, "LLM API call", attrs...)
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("response blocked: finish reason SAFETY")
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
