package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// expectedSchemaVersion is the latest schema version the application
// expects. Failure to reach it is fatal.
const expectedSchemaVersion = 2

// migration represents a database schema migration.
type migration struct {
	up          func(*sql.Tx) error
	description string
	version     int
}

var migrations = []migration{
	{
		version:     1,
		description: "Initial schema",
		up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					label TEXT NOT NULL,
					type TEXT NOT NULL,
					nature TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					date DATETIME NOT NULL,
					description TEXT NOT NULL,
					amount_cents INTEGER NOT NULL,
					category_id TEXT REFERENCES categories(id),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		version:     2,
		description: "Import batches and classification provenance",
		up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS imports (
					id TEXT PRIMARY KEY,
					created_at DATETIME NOT NULL,
					transaction_count INTEGER NOT NULL
				)`,
				`ALTER TABLE transactions ADD COLUMN import_id TEXT REFERENCES imports(id)`,
				`ALTER TABLE transactions ADD COLUMN source TEXT NOT NULL DEFAULT 'ruleBased'`,
				`ALTER TABLE transactions ADD COLUMN superfluous INTEGER NOT NULL DEFAULT 0`,
				`CREATE INDEX idx_transactions_import ON transactions(import_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// migrate applies pending migrations, tracking the version in
// PRAGMA user_version.
func (s *SQLiteStorage) migrate() error {
	var current int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}
		if err := m.up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.description, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}

		slog.Debug("applied migration", "version", m.version, "description", m.description)
	}

	var final int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&final); err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	if final != expectedSchemaVersion {
		return fmt.Errorf("schema version %d, expected %d", final, expectedSchemaVersion)
	}
	return nil
}
