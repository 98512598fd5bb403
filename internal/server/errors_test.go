package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jonathan/intelliresume/internal/generation"
	"github.com/jonathan/intelliresume/internal/ingestion"
	"github.com/jonathan/intelliresume/internal/llm"
	"github.com/jonathan/intelliresume/internal/rendering"
	"github.com/jonathan/intelliresume/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "template", Message: "unknown template"}
	assert.Equal(t, "validation error: template - unknown template", err.Error())
	assert.Equal(t, "validation error: bad body", (&ErrValidation{Message: "bad body"}).Error())
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "history entry", ID: "abc"}
	assert.Equal(t, "history entry not found: abc", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "safety blocked",
			err:      generation.Classify(generation.OpContent, errors.New("blocked: SAFETY")),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "auth failure",
			err:      generation.Classify(generation.OpFeedback, llm.ErrMissingAPIKey),
			expected: http.StatusBadGateway,
		},
		{
			name:     "invalid format",
			err:      generation.Classify(generation.OpContent, errors.New("invalid json reply")),
			expected: http.StatusBadGateway,
		},
		{
			name:     "unknown generation failure",
			err:      generation.Classify(generation.OpContent, errors.New("connection reset")),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "wrapped validation",
			err:      fmt.Errorf("decode: %w", &ErrValidation{Field: "x", Message: "y"}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "upload rejected",
			err:      &ingestion.UploadError{FileName: "a.pdf", Reason: "unsupported"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "body too large",
			err:      &http.MaxBytesError{Limit: 10},
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "not found",
			err:      &ErrNotFound{Resource: "history entry", ID: "1"},
			expected: http.StatusNotFound,
		},
		{
			name:     "pdf unavailable",
			err:      rendering.ErrPDFUnavailable,
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "template failure",
			err:      &rendering.TemplateError{Message: "failed to execute template"},
			expected: http.StatusInternalServerError,
		},
		{
			name:     "plain error",
			err:      errors.New("disk full"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	ge := &generation.GenerationError{
		Kind:    generation.KindInvalidFormat,
		Op:      generation.OpContent,
		Message: "AI response failed validation at contact: email is required",
		Field:   "contact",
	}
	assert.Equal(t, ErrorBody{Error: ge.Message, Kind: "invalid_format", Field: "contact"}, errorBody(ge, http.StatusBadGateway))

	body := errorBody(&ErrValidation{Field: "format", Message: "unsupported"}, http.StatusBadRequest)
	assert.Equal(t, ErrorBody{Error: "unsupported", Kind: "validation", Field: "format"}, body)

	// Internal details stay out of 500 responses.
	assert.Equal(t, ErrorBody{Error: "internal server error"}, errorBody(errors.New("pq: password=secret"), http.StatusInternalServerError))
	assert.Equal(t, "PDF export is not available", errorBody(rendering.ErrPDFUnavailable, http.StatusServiceUnavailable).Error)
}

func TestValidationError(t *testing.T) {
	assert.NoError(t, validationError(nil))

	err := validationError(types.ErrNameOrResumeRequired)
	var ve *ErrValidation
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "input.personal.name", ve.Field)

	req := types.GenerateRequest{
		Input:                     types.UserInput{Personal: types.PersonalInfo{Name: "Jane"}},
		CustomizationInstructions: strings.Repeat("x", 10001),
	}
	err = validationError(req.Validate())
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Field, "CustomizationInstructions")
	assert.Contains(t, ve.Message, "max=10000")

	other := errors.New("other")
	assert.Same(t, other, validationError(other))
}
