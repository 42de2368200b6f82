package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sqlx.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Issued receipts",
		Up: func(tx *sqlx.Tx) error {
			_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS receipts (
				id TEXT PRIMARY KEY,
				issued_at TIMESTAMP NOT NULL,
				receipt_date TEXT NOT NULL DEFAULT '',
				weight TEXT NOT NULL,
				rate TEXT NOT NULL,
				item_total TEXT NOT NULL,
				previous_total TEXT NOT NULL,
				final_total TEXT NOT NULL,
				bill_count INTEGER NOT NULL DEFAULT 0
			)`)
			return err
		},
	},
	{
		Version:     2,
		Description: "Record theme and share target",
		Up: func(tx *sqlx.Tx) error {
			queries := []string{
				`ALTER TABLE receipts ADD COLUMN theme TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE receipts ADD COLUMN target TEXT NOT NULL DEFAULT ''`,
				`CREATE INDEX IF NOT EXISTS idx_receipts_issued_at ON receipts(issued_at)`,
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

// SchemaVersion reports the version recorded in the database.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate brings the schema up to ExpectedSchemaVersion.
func (s *Store) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTxx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied ledger migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("ledger schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
