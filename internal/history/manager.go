package history

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/intelliresume/internal/types"
)

// Manager guards a History with a mutex and writes every change to a Store.
type Manager struct {
	mu      sync.Mutex
	history *History
	store   Store
	now     func() time.Time
	newID   func() string
}

// NewManager loads the stored history. An unreadable or corrupt store is
// logged and treated as empty.
func NewManager(ctx context.Context, store Store, capacity int) *Manager {
	entries, err := store.Load(ctx)
	if err != nil {
		slog.Warn("failed to load history, starting empty", "error", err)
		entries = nil
	}

	return &Manager{
		history: New(capacity, entries),
		store:   store,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Add records doc as the newest entry and persists the list.
func (m *Manager) Add(ctx context.Context, doc types.ResumeDocument) (types.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := NewEntry(m.newID(), doc, m.now().UTC())
	evicted := m.history.Push(entry)
	if len(evicted) > 0 {
		slog.Debug("history capacity reached", "evicted", len(evicted))
	}

	if err := m.save(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}

// List returns the entries, newest first.
func (m *Manager) List() []types.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Entries()
}

// Get returns the entry with id.
func (m *Manager) Get(id string) (types.HistoryEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Get(id)
}

// Delete removes the entry with id. It reports false if no entry matched.
func (m *Manager) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.history.Remove(id) {
		return false, nil
	}
	return true, m.save(ctx)
}

// Clear removes every entry.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history.Clear()
	return m.save(ctx)
}

func (m *Manager) save(ctx context.Context) error {
	if err := m.store.Save(ctx, m.history.Entries()); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Capacity returns the maximum number of retained entries.
func (m *Manager) Capacity() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Capacity()
}
