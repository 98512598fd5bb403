// Package schemas provides JSON Schema validation for structured model output.
package schemas

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/intelliresume/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// First returns the first field error, or an empty FieldError.
func (ve *ValidationError) First() FieldError {
	if len(ve.Errors) == 0 {
		return FieldError{}
	}
	return ve.Errors[0]
}

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// compile loads an embedded schema once and caches the compiled form.
func compile(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}

	data, err := schemas.Load(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "embedded schema missing", Cause: err}
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema failed to compile", Cause: err}
	}

	compiled[name] = s
	return s, nil
}

// ValidateDocument validates an already-decoded JSON value (maps, slices and
// scalars as produced by encoding/json) against an embedded schema.
func ValidateDocument(schemaName string, doc interface{}) error {
	s, err := compile(schemaName)
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "document could not be loaded for validation",
			Cause:   err,
		}
	}

	return toValidationError(result)
}

// CompileAll compiles every embedded schema so a broken file surfaces at
// startup instead of on the first generation request.
func CompileAll() error {
	names := schemas.Names()
	if len(names) == 0 {
		return &SchemaLoadError{Path: ".", Message: "no embedded schemas"}
	}
	for _, name := range names {
		if _, err := compile(name); err != nil {
			return err
		}
	}
	return nil
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   FieldPath(desc.Field()),
			Message: desc.Description(),
		})
	}

	sortFieldErrors(validationErr.Errors)
	return validationErr
}

// sectionRank orders errors the way a resume reads. gojsonschema reports
// errors in map iteration order, so First would otherwise vary between runs.
var sectionRank = map[string]int{
	"(root)":     0,
	"contact":    1,
	"summary":    2,
	"experience": 3,
	"education":  4,
	"skills":     5,
}

var leadingIndex = regexp.MustCompile(`^[^.\[]*\[(\d+)\]`)

func sortFieldErrors(errs []FieldError) {
	sort.SliceStable(errs, func(i, j int) bool {
		a, b := errs[i], errs[j]
		if ra, rb := rankOf(a.Field), rankOf(b.Field); ra != rb {
			return ra < rb
		}
		if ia, ib := indexOf(a.Field), indexOf(b.Field); ia != ib {
			return ia < ib
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.Message < b.Message
	})
}

func rankOf(field string) int {
	section := field
	if i := strings.IndexAny(field, ".["); i >= 0 {
		section = field[:i]
	}
	if r, ok := sectionRank[section]; ok {
		return r
	}
	return len(sectionRank)
}

func indexOf(field string) int {
	m := leadingIndex.FindStringSubmatch(field)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

var indexSegment = regexp.MustCompile(`\.(\d+)(\.|$)`)

// FieldPath converts gojsonschema's dotted field notation into the bracketed
// form used in messages: "experience.2.jobTitle" becomes "experience[2].jobTitle".
func FieldPath(field string) string {
	if field == "" || field == "(root)" {
		return "(root)"
	}
	for indexSegment.MatchString(field) {
		field = indexSegment.ReplaceAllString(field, "[$1]$2")
	}
	return field
}
