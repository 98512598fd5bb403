package generation

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/jonathan/intelliresume/internal/schemas"
	"github.com/jonathan/intelliresume/internal/types"
	rootschemas "github.com/jonathan/intelliresume/schemas"
)

// fencePattern matches a reply that is exactly one fenced block.
var fencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?\\s*```$")

// StripCodeFence trims the reply and, when the whole reply is a single
// ``` or ```json fenced block, returns its trimmed body. Replies with prose
// around the fence are returned trimmed but otherwise untouched.
func StripCodeFence(reply string) string {
	text := strings.TrimSpace(reply)
	if m := fencePattern.FindStringSubmatch(text); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return text
}

// ParseResumeReply turns a raw model reply into a validated, normalized
// ResumeDocument. Every failure is an InvalidFormat GenerationError; no
// partial document is ever returned.
func ParseResumeReply(reply string) (*types.ResumeDocument, error) {
	body := StripCodeFence(reply)

	var raw interface{}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, newError(OpContent, KindInvalidFormat, err)
	}

	if err := schemas.ValidateDocument(rootschemas.ResumeDocument, raw); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			first := ve.First()
			ge := invalidFormat(first.Field, first.Message)
			ge.Cause = err
			return nil, ge
		}
		return nil, unknownError(OpContent, err)
	}

	doc := normalize(raw.(map[string]interface{}))
	return &doc, nil
}
