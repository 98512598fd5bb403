package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/intelliresume/internal/types"
)

// Store persists the full history list.
type Store interface {
	Load(ctx context.Context) ([]types.HistoryEntry, error)
	Save(ctx context.Context, entries []types.HistoryEntry) error
}

// FileStore keeps the history as a JSON array in a single file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the file. A missing file is an empty history.
func (s *FileStore) Load(_ context.Context) ([]types.HistoryEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []types.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", s.path, err)
	}
	return entries, nil
}

// Save writes the entries atomically through a temp file and rename.
func (s *FileStore) Save(_ context.Context, entries []types.HistoryEntry) error {
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// MemoryStore keeps the history in memory only.
type MemoryStore struct {
	entries []types.HistoryEntry
}

// Load returns the saved entries.
func (s *MemoryStore) Load(_ context.Context) ([]types.HistoryEntry, error) {
	return append([]types.HistoryEntry{}, s.entries...), nil
}

// Save replaces the saved entries.
func (s *MemoryStore) Save(_ context.Context, entries []types.HistoryEntry) error {
	s.entries = append([]types.HistoryEntry{}, entries...)
	return nil
}
