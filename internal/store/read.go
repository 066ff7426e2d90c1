package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/jcheck/internal/journal"
)

// OpenReverseCursor returns a cursor that yields entries newest first.
//
// The cursor holds the store's only connection until it is closed, so
// callers must Close it before appending again.
func (s *Store) OpenReverseCursor(ctx context.Context) (journal.Cursor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, cursor, message, int_fields, str_fields
		FROM entries
		ORDER BY seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("open reverse cursor: %w", err)
	}
	return &reverseCursor{rows: rows}, nil
}

// reverseCursor adapts *sql.Rows to journal.Cursor.
type reverseCursor struct {
	rows   *sql.Rows
	err    error
	closed bool
}

func (c *reverseCursor) Previous() (journal.Entry, bool) {
	if c.closed || c.err != nil {
		return journal.Entry{}, false
	}
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			c.err = fmt.Errorf("iterate entries: %w", err)
		}
		return journal.Entry{}, false
	}

	e, err := scanEntry(c.rows)
	if err != nil {
		c.err = err
		return journal.Entry{}, false
	}
	return e, true
}

func (c *reverseCursor) Err() error {
	return c.err
}

func (c *reverseCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}

// scanEntry scans a row into a journal.Entry.
func scanEntry(rows *sql.Rows) (journal.Entry, error) {
	var (
		seq                int64
		cursor, message    string
		intsJSON, strsJSON string
	)
	if err := rows.Scan(&seq, &cursor, &message, &intsJSON, &strsJSON); err != nil {
		return journal.Entry{}, fmt.Errorf("scan entry: %w", err)
	}

	ints := make(map[string]int64)
	if err := json.Unmarshal([]byte(intsJSON), &ints); err != nil {
		return journal.Entry{}, fmt.Errorf("entry %d: unmarshal int fields: %w", seq, err)
	}
	strs := make(map[string]string)
	if err := json.Unmarshal([]byte(strsJSON), &strs); err != nil {
		return journal.Entry{}, fmt.Errorf("entry %d: unmarshal text fields: %w", seq, err)
	}

	return buildEntry(seq, cursor, message, ints, strs), nil
}

// buildEntry assembles an entry, restoring MESSAGE into the text fields.
func buildEntry(seq int64, cursor, message string, ints map[string]int64, strs map[string]string) journal.Entry {
	strs[journal.FieldMessage] = message
	return journal.Entry{
		Seq:     seq,
		Cursor:  cursor,
		Ints:    ints,
		Strings: strs,
	}
}
