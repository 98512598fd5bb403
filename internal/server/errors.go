package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/intelliresume/internal/generation"
	"github.com/jonathan/intelliresume/internal/ingestion"
	"github.com/jonathan/intelliresume/internal/rendering"
	"github.com/jonathan/intelliresume/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		genErr    *generation.GenerationError
		validErr  *ErrValidation
		notFound  *ErrNotFound
		uploadErr *ingestion.UploadError
		maxBytes  *http.MaxBytesError
	)

	switch {
	case errors.As(err, &genErr):
		switch genErr.Kind {
		case generation.KindSafetyBlocked:
			return http.StatusUnprocessableEntity
		case generation.KindAuthFailure, generation.KindInvalidFormat:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	case errors.As(err, &validErr), errors.As(err, &uploadErr):
		return http.StatusBadRequest
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, rendering.ErrPDFUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the response body for err. Server-side failures other than
// generation errors are reported without internal detail.
func errorBody(err error, status int) ErrorBody {
	var genErr *generation.GenerationError
	if errors.As(err, &genErr) {
		return ErrorBody{Error: genErr.Message, Kind: string(genErr.Kind), Field: genErr.Field}
	}

	var validErr *ErrValidation
	if errors.As(err, &validErr) {
		return ErrorBody{Error: validErr.Message, Kind: "validation", Field: validErr.Field}
	}

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		return ErrorBody{Error: "internal server error"}
	}
	return ErrorBody{Error: err.Error()}
}

// validationError converts request validation failures into *ErrValidation.
// Other errors are returned unchanged.
func validationError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, types.ErrNameOrResumeRequired) {
		return &ErrValidation{Field: "input.personal.name", Message: err.Error()}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
		}
		return &ErrValidation{Field: fe.Namespace(), Message: msg}
	}

	return err
}
