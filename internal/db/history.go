package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/intelliresume/internal/types"
)

// HistoryStore persists the resume history list in the resume_history table.
// Row position preserves the newest-first order.
type HistoryStore struct {
	db *DB
}

// NewHistoryStore returns a history store using db.
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Load returns all entries ordered newest first.
func (s *HistoryStore) Load(ctx context.Context) ([]types.HistoryEntry, error) {
	rows, err := s.db.pool.Query(ctx,
		`SELECT id, name, created_at, resume FROM resume_history ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []types.HistoryEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}

// Save replaces the stored list in a single transaction.
func (s *HistoryStore) Save(ctx context.Context, entries []types.HistoryEntry) error {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM resume_history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	batch := &pgx.Batch{}
	for i, e := range entries {
		resume, err := json.Marshal(e.Resume)
		if err != nil {
			return fmt.Errorf("failed to marshal history entry %s: %w", e.ID, err)
		}
		batch.Queue(
			`INSERT INTO resume_history (id, position, name, created_at, resume) VALUES ($1, $2, $3, $4, $5)`,
			e.ID, i, e.Name, e.Timestamp, resume,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert history: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	return nil
}

func scanEntry(row pgx.Row) (types.HistoryEntry, error) {
	var (
		e         types.HistoryEntry
		createdAt time.Time
		resume    []byte
	)
	if err := row.Scan(&e.ID, &e.Name, &createdAt, &resume); err != nil {
		return e, fmt.Errorf("failed to scan history row: %w", err)
	}
	if err := json.Unmarshal(resume, &e.Resume); err != nil {
		return e, fmt.Errorf("failed to decode history entry %s: %w", e.ID, err)
	}
	e.Timestamp = createdAt.UTC()
	return e, nil
}
