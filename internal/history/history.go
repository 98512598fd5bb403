// Package history keeps a bounded, most-recent-first list of generated
// resumes and persists it through a Store.
package history

import (
	"strings"
	"time"

	"github.com/jonathan/intelliresume/internal/types"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 15

// UntitledName is the display name for a resume without a contact name.
const UntitledName = "Untitled Resume"

// History is a capped list of entries, newest first. It is not safe for
// concurrent use; Manager adds locking.
type History struct {
	capacity int
	entries  []types.HistoryEntry
}

// New returns a History holding at most capacity entries, seeded with
// entries (newest first). Extra seed entries are dropped.
func New(capacity int, entries []types.HistoryEntry) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	h := &History{capacity: capacity}
	if len(entries) > capacity {
		entries = entries[:capacity]
	}
	h.entries = append(make([]types.HistoryEntry, 0, capacity), entries...)
	return h
}

// NewEntry builds an entry for doc. The name falls back to UntitledName.
func NewEntry(id string, doc types.ResumeDocument, now time.Time) types.HistoryEntry {
	name := strings.TrimSpace(doc.Contact.Name)
	if name == "" {
		name = UntitledName
	}
	return types.HistoryEntry{
		ID:        id,
		Name:      name,
		Timestamp: now,
		Resume:    doc,
	}
}

// Push prepends entry and truncates to capacity, returning evicted entries.
func (h *History) Push(entry types.HistoryEntry) []types.HistoryEntry {
	h.entries = append([]types.HistoryEntry{entry}, h.entries...)
	if len(h.entries) <= h.capacity {
		return nil
	}
	evicted := append([]types.HistoryEntry(nil), h.entries[h.capacity:]...)
	h.entries = h.entries[:h.capacity]
	return evicted
}

// Remove deletes the entry with id and reports whether it existed.
func (h *History) Remove(id string) bool {
	for i, e := range h.entries {
		if e.ID == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the entry with id.
func (h *History) Get(id string) (types.HistoryEntry, bool) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return types.HistoryEntry{}, false
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []types.HistoryEntry {
	return append([]types.HistoryEntry{}, h.entries...)
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of entries.
func (h *History) Capacity() int {
	return h.capacity
}
