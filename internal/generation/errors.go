package generation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/intelliresume/internal/llm"
)

// Kind is the closed set of generation failure categories.
type Kind string

// Failure kinds.
const (
	KindSafetyBlocked Kind = "safety_blocked"
	KindAuthFailure   Kind = "auth_failure"
	KindInvalidFormat Kind = "invalid_format"
	KindUnknown       Kind = "unknown"
)

// Operation names the generator call that failed.
type Operation string

// Generator operations.
const (
	OpContent  Operation = "content"
	OpFeedback Operation = "feedback"
)

// GenerationError is the only error type returned by the generators.
type GenerationError struct {
	Kind    Kind
	Op      Operation
	Message string // user-facing
	Field   string // offending field path for schema failures
	Cause   error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is matches another GenerationError by kind, so errors.Is(err,
// &GenerationError{Kind: KindAuthFailure}) works.
func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// KindOf returns the kind of err, or KindUnknown if err is not a GenerationError.
func KindOf(err error) Kind {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

var messages = map[Operation]map[Kind]string{
	OpContent: {
		KindSafetyBlocked: "The generated content was blocked due to safety settings. Please revise your input or try a different approach.",
		KindAuthFailure:   "The API key is invalid or missing. Please ensure it is correctly configured.",
		KindInvalidFormat: "The AI returned an invalid format. Please try generating again.",
		KindUnknown:       "Failed to generate resume content.",
	},
	OpFeedback: {
		KindSafetyBlocked: "The feedback request was blocked due to safety settings. Please revise your input or try a different approach.",
		KindAuthFailure:   "The API key is invalid or missing. Please ensure it is correctly configured for feedback.",
		KindUnknown:       "Failed to get AI feedback.",
	},
}

func message(op Operation, kind Kind) string {
	if m, ok := messages[op][kind]; ok {
		return m
	}
	return messages[OpContent][kind]
}

func newError(op Operation, kind Kind, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Op: op, Message: message(op, kind), Cause: cause}
}

// invalidFormat reports a reply that parsed but broke the document schema.
func invalidFormat(field, detail string) *GenerationError {
	return &GenerationError{
		Kind:    KindInvalidFormat,
		Op:      OpContent,
		Message: fmt.Sprintf("AI response failed validation at %s: %s", field, detail),
		Field:   field,
	}
}

// A classifier inspects an error and claims it by returning ok=true.
type classifier func(op Operation, err error, msg string) (*GenerationError, bool)

// classifiers run in priority order; the first claim wins.
var classifiers = []classifier{
	classifySafety,
	classifyAuth,
	classifyExisting,
	classifyFormat,
}

// Classify maps any failure from a generator call into a GenerationError.
// It has no side effects; a nil error yields nil.
func Classify(op Operation, err error) *GenerationError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, c := range classifiers {
		if ge, ok := c(op, err, msg); ok {
			return ge
		}
	}

	return unknownError(op, err)
}

func unknownError(op Operation, err error) *GenerationError {
	ge := newError(op, KindUnknown, err)
	ge.Message = fmt.Sprintf("%s %s", ge.Message, err.Error())
	return ge
}

func classifySafety(op Operation, err error, msg string) (*GenerationError, bool) {
	if strings.Contains(strings.ToUpper(msg), "SAFETY") {
		return newError(op, KindSafetyBlocked, err), true
	}
	return nil, false
}

var authMarkers = []string{
	"API_KEY_INVALID",
	"API key not valid",
	"API key is required",
	"API key is missing",
	"API key missing",
	"API key expired",
}

func classifyAuth(op Operation, err error, msg string) (*GenerationError, bool) {
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return newError(op, KindAuthFailure, err), true
	}
	for _, marker := range authMarkers {
		if strings.Contains(msg, marker) {
			return newError(op, KindAuthFailure, err), true
		}
	}
	return nil, false
}

func classifyExisting(_ Operation, err error, _ string) (*GenerationError, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

func classifyFormat(op Operation, err error, msg string) (*GenerationError, bool) {
	if op != OpContent {
		return nil, false
	}
	if strings.Contains(strings.ToLower(msg), "json") {
		return newError(op, KindInvalidFormat, err), true
	}
	return nil, false
}
