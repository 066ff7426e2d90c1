package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/jcheck/internal/journal"
)

// ErrInjected is returned by FaultyJournal for injected failures.
var ErrInjected = errors.New("injected failure")

// FaultyJournal wraps a journal and fails selected operations.
// It lets tests drive the write and store error paths without a broken
// database.
type FaultyJournal struct {
	journal.Journal

	mu         sync.Mutex
	FailOpen   bool // OpenReverseCursor returns ErrInjected
	FailAppend bool // Append returns ErrInjected
	FailReadAt int  // Previous fails on the Nth step (1-based); 0 disables
	Opens      int  // number of cursors opened
	Closes     int  // number of cursors closed
}

// Append implements journal.Appender.
func (f *FaultyJournal) Append(ctx context.Context, rec journal.Record) (journal.Entry, error) {
	if f.FailAppend {
		return journal.Entry{}, ErrInjected
	}
	return f.Journal.Append(ctx, rec)
}

// OpenReverseCursor implements journal.Reader.
func (f *FaultyJournal) OpenReverseCursor(ctx context.Context) (journal.Cursor, error) {
	if f.FailOpen {
		return nil, ErrInjected
	}
	cur, err := f.Journal.OpenReverseCursor(ctx)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.Opens++
	f.mu.Unlock()
	return &faultyCursor{Cursor: cur, owner: f, failAt: f.FailReadAt}, nil
}

type faultyCursor struct {
	journal.Cursor
	owner  *FaultyJournal
	failAt int
	steps  int
	err    error
	closed bool
}

func (c *faultyCursor) Previous() (journal.Entry, bool) {
	if c.err != nil {
		return journal.Entry{}, false
	}
	c.steps++
	if c.failAt > 0 && c.steps >= c.failAt {
		c.err = ErrInjected
		return journal.Entry{}, false
	}
	return c.Cursor.Previous()
}

func (c *faultyCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.Cursor.Err()
}

func (c *faultyCursor) Close() error {
	if !c.closed {
		c.closed = true
		c.owner.mu.Lock()
		c.owner.Closes++
		c.owner.mu.Unlock()
	}
	return c.Cursor.Close()
}
