package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/jcheck/internal/journal"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema
// 1 - Expression index on the correlation id field
const currentSchemaVersion = 1

// Store is a SQLite journal. It implements journal.Journal.
type Store struct {
	db      *sql.DB
	cursors journal.CursorGenerator
}

var _ journal.Journal = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithCursorGenerator overrides the default UUIDv7 cursor generator.
func WithCursorGenerator(g journal.CursorGenerator) Option {
	return func(s *Store) {
		s.cursors = g
	}
}

// Open creates or opens a SQLite journal at the given path.
// Applies required pragmas and migrations automatically.
// Use ":memory:" for a private in-memory journal.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, and ":memory:" databases
	// are per-connection, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{db: db, cursors: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Count returns the number of entries in the journal.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 indexes the correlation id so ad-hoc lookups by TLOG_ID do not
// need a table scan. The verifier itself always walks the cursor.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_entries_correlation
		ON entries(json_extract(int_fields, '$.TLOG_ID'))
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
