package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/intelliresume/internal/prompts"
	"github.com/jonathan/intelliresume/internal/schemas"
	"github.com/jonathan/intelliresume/internal/types"
)

const (
	notSpecified = "Not specified"
	notProvided  = "Not provided"
)

// requiredPromptKeys are the resume.json entries the prompt builders read.
var requiredPromptKeys = []string{
	"content-intro",
	"content-uploaded-resume",
	"content-user-data",
	"content-precedence-with-upload",
	"content-precedence-without-upload",
	"content-job-description",
	"content-customization",
	"content-guidelines",
	"content-output-shape",
	"content-key-instructions",
	"feedback",
}

// CheckAssets verifies that the embedded prompt catalog holds every key the
// builders use and that every embedded schema compiles.
func CheckAssets() error {
	keys, err := prompts.List(prompts.ResumeFile)
	if err != nil {
		return fmt.Errorf("failed to load prompt catalog: %w", err)
	}
	var missing []string
	for _, want := range requiredPromptKeys {
		i := sort.SearchStrings(keys, want)
		if i == len(keys) || keys[i] != want {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("prompt catalog %s is missing %s", prompts.ResumeFile, strings.Join(missing, ", "))
	}

	if err := schemas.CompileAll(); err != nil {
		return fmt.Errorf("failed to compile schemas: %w", err)
	}
	return nil
}

// BuildContentPrompt assembles the resume generation prompt. The output is
// a pure function of the request.
func BuildContentPrompt(req types.GenerateRequest) (string, error) {
	userData, err := indentJSON(req.Input)
	if err != nil {
		return "", fmt.Errorf("failed to encode user input: %w", err)
	}

	hasUpload := present(req.UploadedResumeText)
	precedenceKey := "content-precedence-without-upload"
	if hasUpload {
		precedenceKey = "content-precedence-with-upload"
	}

	type block struct {
		key  string
		data map[string]string
		skip bool
	}
	blocks := []block{
		{key: "content-intro"},
		{key: "content-uploaded-resume", data: map[string]string{"UploadedResumeText": req.UploadedResumeText}, skip: !hasUpload},
		{key: "content-user-data", data: map[string]string{
			"UserData":   userData,
			"Precedence": prompts.MustGet(prompts.ResumeFile, precedenceKey),
		}},
		{key: "content-job-description", data: map[string]string{"JobDescription": req.JobDescription}, skip: !present(req.JobDescription)},
		{key: "content-customization", data: map[string]string{"CustomizationInstructions": req.CustomizationInstructions}, skip: !present(req.CustomizationInstructions)},
		{key: "content-guidelines"},
		{key: "content-output-shape"},
		{key: "content-key-instructions"},
	}

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.skip {
			continue
		}
		text, err := prompts.Render(prompts.ResumeFile, b.key, b.data)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, "\n\n"), nil
}

// BuildFeedbackPrompt assembles the critique prompt for a generated resume.
func BuildFeedbackPrompt(req types.FeedbackRequest) (string, error) {
	resumeData, err := indentJSON(req.Resume)
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}

	return prompts.Render(prompts.ResumeFile, "feedback", map[string]string{
		"ResumeData":                resumeData,
		"TargetRole":                orDefault(req.TargetRole, notSpecified),
		"TargetIndustry":            orDefault(req.TargetIndustry, notSpecified),
		"JobDescription":            delimited(req.JobDescription),
		"CustomizationInstructions": delimited(req.CustomizationInstructions),
	})
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func orDefault(s, fallback string) string {
	if present(s) {
		return s
	}
	return fallback
}

// delimited wraps optional long-form context in --- markers.
func delimited(s string) string {
	if !present(s) {
		return notProvided
	}
	return "\n---\n" + s + "\n---"
}

// indentJSON encodes v with two-space indentation and without HTML escaping,
// so text such as "R&D" reaches the model as typed.
func indentJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
