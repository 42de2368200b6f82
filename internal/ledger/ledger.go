// Package ledger keeps an append-only history of issued receipts in SQLite.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Ledger errors.
var (
	ErrNotFound     = errors.New("receipt not found")
	ErrAmbiguousID  = errors.New("receipt id prefix matches more than one receipt")
	ErrNilContext   = errors.New("context cannot be nil")
	ErrInvalidEntry = errors.New("invalid ledger entry")
)

// MemoryPath opens a private in-memory ledger.
const MemoryPath = ":memory:"

// Store is the SQLite-backed ledger.
type Store struct {
	db   *sqlx.DB
	path string
}

// Open opens or creates the ledger at path. Call Migrate before use.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty ledger path", ErrInvalidEntry)
	}

	dsn := MemoryPath
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	// One connection: SQLite serializes writers anyway, and an in-memory
	// database exists only on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping ledger: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the location the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}
