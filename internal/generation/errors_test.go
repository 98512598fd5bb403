package generation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/intelliresume/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	existing := invalidFormat("experience[0]", "jobTitle is required")

	tests := []struct {
		name        string
		op          Operation
		err         error
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "safety block",
			op:          OpContent,
			err:         errors.New("blocked: candidate: FinishReasonSafety"),
			wantKind:    KindSafetyBlocked,
			wantMessage: "blocked due to safety settings",
		},
		{
			name:     "safety upper case",
			op:       OpFeedback,
			err:      errors.New("response blocked: finish reason SAFETY"),
			wantKind: KindSafetyBlocked,
		},
		{
			name:        "invalid key",
			op:          OpContent,
			err:         errors.New("googleapi: Error 400: API key not valid. Please pass a valid API key. API_KEY_INVALID"),
			wantKind:    KindAuthFailure,
			wantMessage: "API key is invalid or missing",
		},
		{
			name:     "missing key sentinel",
			op:       OpContent,
			err:      fmt.Errorf("startup: %w", llm.ErrMissingAPIKey),
			wantKind: KindAuthFailure,
		},
		{
			name:        "feedback auth wording",
			op:          OpFeedback,
			err:         errors.New("API_KEY_INVALID"),
			wantKind:    KindAuthFailure,
			wantMessage: "configured for feedback",
		},
		{
			name:        "existing error passes through",
			op:          OpContent,
			err:         fmt.Errorf("wrapped: %w", existing),
			wantKind:    KindInvalidFormat,
			wantMessage: "experience[0]: jobTitle is required",
		},
		{
			name:        "json mention on content",
			op:          OpContent,
			err:         errors.New("unexpected end of JSON input"),
			wantKind:    KindInvalidFormat,
			wantMessage: "invalid format",
		},
		{
			name:        "json mention on feedback is unknown",
			op:          OpFeedback,
			err:         errors.New("unexpected end of JSON input"),
			wantKind:    KindUnknown,
			wantMessage: "Failed to get AI feedback. unexpected end of JSON input",
		},
		{
			name:        "anything else",
			op:          OpContent,
			err:         errors.New("connection reset by peer"),
			wantKind:    KindUnknown,
			wantMessage: "Failed to generate resume content. connection reset by peer",
		},
		{
			name:     "safety outranks auth",
			op:       OpContent,
			err:      errors.New("SAFETY API_KEY_INVALID"),
			wantKind: KindSafetyBlocked,
		},
		{
			name:     "auth outranks passthrough",
			op:       OpContent,
			err:      fmt.Errorf("API key not valid: %w", existing),
			wantKind: KindAuthFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ge := Classify(tt.op, tt.err)
			require.NotNil(t, ge)
			assert.Equal(t, tt.wantKind, ge.Kind)
			if tt.wantMessage != "" {
				assert.Contains(t, ge.Message, tt.wantMessage)
			}
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, Classify(OpContent, nil))
}

func TestClassify_PassthroughIsSameValue(t *testing.T) {
	existing := invalidFormat("skills", "Invalid type")
	assert.Same(t, existing, Classify(OpContent, existing))
}

func TestClassify_KeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	ge := Classify(OpContent, cause)
	assert.True(t, errors.Is(ge, cause))
}

func TestGenerationError_Is(t *testing.T) {
	ge := Classify(OpFeedback, errors.New("API_KEY_INVALID"))

	assert.True(t, errors.Is(ge, &GenerationError{Kind: KindAuthFailure}))
	assert.True(t, errors.Is(ge, &GenerationError{Kind: KindAuthFailure, Op: OpFeedback}))
	assert.False(t, errors.Is(ge, &GenerationError{Kind: KindAuthFailure, Op: OpContent}))
	assert.False(t, errors.Is(ge, &GenerationError{Kind: KindUnknown}))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindSafetyBlocked, KindOf(fmt.Errorf("x: %w", Classify(OpContent, errors.New("SAFETY")))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}
