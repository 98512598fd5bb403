package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/intelliresume/internal/db"
	"github.com/jonathan/intelliresume/internal/generation"
	"github.com/jonathan/intelliresume/internal/history"
	"github.com/jonathan/intelliresume/internal/ingestion"
	"github.com/jonathan/intelliresume/internal/llm"
	"github.com/jonathan/intelliresume/internal/types"
)

// openHistory opens the configured history store. Callers must call the
// returned close function.
func openHistory(ctx context.Context) (*history.Manager, func(), error) {
	store, closeFn, err := db.OpenHistory(ctx, appConfig.DatabaseURL, appConfig.HistoryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}
	return history.NewManager(ctx, store, appConfig.HistoryCapacity), closeFn, nil
}

// newGenerator creates a Gemini-backed generator.
func newGenerator(ctx context.Context) (*generation.Generator, func(), error) {
	if err := generation.CheckAssets(); err != nil {
		return nil, nil, err
	}

	client, err := llm.NewGeminiClient(ctx, appConfig.LLMConfig(), appConfig.APIKey)
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	gen := generation.New(client,
		generation.WithTier(appConfig.ModelTier()),
		generation.WithTemperatures(appConfig.ContentTemperature, appConfig.FeedbackTemperature),
	)
	return gen, func() { _ = client.Close() }, nil
}

// loadResume reads a ResumeDocument from a JSON file or from the history.
// Exactly one of path and historyID must be set.
func loadResume(ctx context.Context, path, historyID string) (*types.ResumeDocument, error) {
	switch {
	case path != "" && historyID != "":
		return nil, fmt.Errorf("--resume and --history-id are mutually exclusive; provide only one")
	case path != "":
		var doc types.ResumeDocument
		if err := readJSONFile(path, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	case historyID != "":
		manager, closeFn, err := openHistory(ctx)
		if err != nil {
			return nil, err
		}
		defer closeFn()

		entry, ok := manager.Get(historyID)
		if !ok {
			return nil, fmt.Errorf("history entry not found: %s", historyID)
		}
		return &entry.Resume, nil
	default:
		return nil, fmt.Errorf("either --resume or --history-id must be provided")
	}
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// readJobDescription reads a pasted job description (plain text or HTML).
func readJobDescription(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return ingestion.CleanJobDescription(string(data)), nil
}

// readUploadedResume applies the upload checks to a resume file on disk.
func readUploadedResume(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open resume file: %w", err)
	}
	defer func() { _ = f.Close() }()

	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	upload, err := ingestion.ReadUpload(path, size, f)
	if err != nil {
		return "", err
	}
	return upload.Text, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// parseFormats parses a comma-separated list of export formats, dropping
// duplicates.
func parseFormats(s string) ([]types.ExportFormat, error) {
	var formats []types.ExportFormat
	seen := make(map[types.ExportFormat]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		f, err := types.ParseExportFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("at least one export format is required")
	}
	return formats, nil
}
