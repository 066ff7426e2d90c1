// Package verify locates a just-written record in a journal.
//
// A scan walks the journal from the newest entry toward the oldest and stops
// at the first entry matching the Expectation. The record under test is
// normally the newest one, so the common case visits a single entry.
//
// In Correlated mode an entry whose TLOG_ID matches but whose PRIORITY does
// not is skipped, and the scan keeps looking for an older entry with both.
// Writers may emit several severities under one correlation id.
package verify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/jcheck/internal/journal"
)

// Scanner is implemented by Verifier and Retrying.
type Scanner interface {
	Verify(ctx context.Context, r journal.Reader, exp Expectation) (ScanResult, error)
}

// Options bound a single scan. Zero values mean unbounded.
type Options struct {
	// MaxEntries stops the scan after this many entries (limit_reached).
	MaxEntries int
	// Timeout stops the scan after this duration (timed_out).
	Timeout time.Duration
}

// Verifier performs reverse-chronological scans.
type Verifier struct {
	opts   Options
	logger *slog.Logger
}

// New creates a verifier. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Verifier{opts: opts, logger: logger}
}

// Verify scans r for an entry matching exp.
//
// The returned error is non-nil only for journal failures, and is then a
// *StoreError with Outcome store_error. Misses, limits, timeouts and
// cancellation are reported through the Outcome with a nil error.
// The cursor is closed on every path.
func (v *Verifier) Verify(ctx context.Context, r journal.Reader, exp Expectation) (ScanResult, error) {
	if v.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.opts.Timeout)
		defer cancel()
	}

	res, err := v.scan(ctx, r, exp)
	res.Attempts = 1

	v.logger.Debug("scan finished",
		"expect", exp.String(),
		"outcome", res.Outcome,
		"visited", res.Visited,
	)
	return res, err
}

func (v *Verifier) scan(ctx context.Context, r journal.Reader, exp Expectation) (ScanResult, error) {
	if o, stopped := interrupted(ctx); stopped {
		return ScanResult{Outcome: o}, nil
	}

	cur, err := r.OpenReverseCursor(ctx)
	if err != nil {
		if o, stopped := interrupted(ctx); stopped {
			return ScanResult{Outcome: o}, nil
		}
		return ScanResult{Outcome: OutcomeStoreError}, &StoreError{Op: "open", Err: err}
	}
	defer cur.Close()

	visited := 0
	for {
		if v.opts.MaxEntries > 0 && visited >= v.opts.MaxEntries {
			return ScanResult{Outcome: OutcomeLimitReached, Visited: visited}, nil
		}
		if o, stopped := interrupted(ctx); stopped {
			return ScanResult{Outcome: o, Visited: visited}, nil
		}

		e, ok := cur.Previous()
		if !ok {
			break
		}
		visited++

		if exp.Matches(e) {
			return ScanResult{Found: true, Outcome: OutcomeFound, Visited: visited, Entry: &e}, nil
		}
	}

	// A cursor bound to an expired context reports the context error;
	// that is a timeout, not a journal failure.
	if o, stopped := interrupted(ctx); stopped {
		return ScanResult{Outcome: o, Visited: visited}, nil
	}
	if err := cur.Err(); err != nil {
		return ScanResult{Outcome: OutcomeStoreError, Visited: visited}, &StoreError{Op: "read", Err: err}
	}
	return ScanResult{Outcome: OutcomeExhausted, Visited: visited}, nil
}

// interrupted maps a done context onto an outcome.
func interrupted(ctx context.Context) (Outcome, bool) {
	switch err := ctx.Err(); {
	case err == nil:
		return "", false
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimedOut, true
	default:
		return OutcomeCancelled, true
	}
}
