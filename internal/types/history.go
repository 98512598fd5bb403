package types

import "time"

// HistoryEntry is a saved generation.
type HistoryEntry struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"timestamp"`
	Resume    ResumeDocument `json:"resumeData"`
}
