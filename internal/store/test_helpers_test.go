package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/testutil"
)

// createTestStore creates a new file-backed store with deterministic cursors.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithCursorGenerator(testutil.NewSequenceCursors()))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a writer-shaped record.
func createTestRecord(id int64, priority journal.Severity, message string) journal.Record {
	return journal.NewRecord().
		SetString(journal.FieldMessage, message).
		SetInt(journal.FieldPriority, int64(priority)).
		SetInt(journal.FieldCorrelationID, id)
}
