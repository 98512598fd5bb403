package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierStandard, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "custom-model", newConfig.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
}

func TestParseTier(t *testing.T) {
	assert.Equal(t, TierLite, ParseTier("lite"))
	assert.Equal(t, TierAdvanced, ParseTier("advanced"))
	assert.Equal(t, TierStandard, ParseTier("standard"))
	assert.Equal(t, TierStandard, ParseTier(""))
	assert.Equal(t, TierStandard, ParseTier("bogus"))
}

func TestNewGeminiClient_MissingKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), nil, "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestExtractTextFromResponse(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr string
	}{
		{
			name:    "nil response",
			resp:    nil,
			wantErr: "no candidates",
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: "no candidates",
		},
		{
			name: "safety finish",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonSafety},
			}},
			wantErr: "SAFETY",
		},
		{
			name: "no content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonStop},
			}},
			wantErr: "no content",
		},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("{\"a\":"), genai.Text("1}")}}},
			}},
			want: "{\"a\":1}",
		},
		{
			name: "no text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
			}},
			wantErr: "no text parts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractTextFromResponse(tt.resp)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
