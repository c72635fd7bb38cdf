package main

import (
	"context"
	"fmt"

	"movimenti/internal/config"
	"movimenti/internal/storage"
)

// initStorage opens the configured database, running migrations and
// seeding the default category set on first use.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.SeedDefaultCategories(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	return store, nil
}
