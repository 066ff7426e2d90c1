package journal

import (
	"context"
	"io"
)

// Reader opens reverse-chronological cursors over a journal.
type Reader interface {
	// OpenReverseCursor returns a cursor positioned after the newest entry.
	// The caller must Close it.
	OpenReverseCursor(ctx context.Context) (Cursor, error)
}

// Cursor steps from the newest entry toward the oldest.
type Cursor interface {
	// Previous returns the next older entry. It returns false when the
	// journal is exhausted or a read failed; check Err to tell them apart.
	Previous() (Entry, bool)

	// Err returns the first read error encountered, if any.
	Err() error

	// Close releases the cursor. Safe to call more than once.
	Close() error
}

// Appender durably appends records to a journal.
type Appender interface {
	// Append writes rec and returns the stored entry with its assigned
	// sequence number and cursor. The entry is visible to cursors opened
	// after Append returns.
	Append(ctx context.Context, rec Record) (Entry, error)
}

// Journal is a readable, appendable log store.
type Journal interface {
	Reader
	Appender
	io.Closer
}

// CursorGenerator produces the opaque cursor string stored with each entry.
type CursorGenerator interface {
	Generate() string
}
