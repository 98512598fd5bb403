package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/intelliresume/internal/history"
)

// OpenHistory returns the history store to use: PostgreSQL when databaseURL
// is set, otherwise the JSON file at path. The returned close function is
// never nil.
func OpenHistory(ctx context.Context, databaseURL, path string) (history.Store, func(), error) {
	if databaseURL == "" {
		slog.Debug("using file history store", "path", path)
		return history.NewFileStore(path), func() {}, nil
	}

	database, err := Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to prepare history table: %w", err)
	}

	slog.Debug("using PostgreSQL history store")
	return NewHistoryStore(database), database.Close, nil
}
