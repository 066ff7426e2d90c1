package verify

import (
	"context"
	"time"

	"github.com/roach88/jcheck/internal/journal"
)

// Retrying re-runs whole scans for journals that do not guarantee
// read-after-write visibility.
//
// A scan that ends exhausted, limit_reached or timed_out is retried after a
// backoff that doubles each attempt, capped at MaxBackoff. Store errors and
// cancellation are returned immediately.
//
// A nil Verifier means an unbounded one that discards its logs.
type Retrying struct {
	Verifier   *Verifier
	Attempts   int           // total scans; values below 1 mean 1
	Backoff    time.Duration // delay before the second scan
	MaxBackoff time.Duration // 0 means uncapped
}

// Verify implements Scanner.
func (rv *Retrying) Verify(ctx context.Context, r journal.Reader, exp Expectation) (ScanResult, error) {
	attempts := rv.Attempts
	if attempts < 1 {
		attempts = 1
	}
	v := rv.Verifier
	if v == nil {
		v = New(Options{}, nil)
	}
	delay := rv.Backoff

	var res ScanResult
	var err error
	for attempt := 1; ; attempt++ {
		res, err = v.Verify(ctx, r, exp)
		res.Attempts = attempt
		if err != nil || !retryable(res.Outcome) || attempt >= attempts {
			return res, err
		}

		v.logger.Debug("scan missed, retrying",
			"expect", exp.String(),
			"attempt", attempt,
			"delay", delay,
		)

		if !sleep(ctx, delay) {
			res.Outcome, _ = interrupted(ctx)
			return res, nil
		}
		delay *= 2
		if rv.MaxBackoff > 0 && delay > rv.MaxBackoff {
			delay = rv.MaxBackoff
		}
	}
}

func retryable(o Outcome) bool {
	switch o {
	case OutcomeExhausted, OutcomeLimitReached, OutcomeTimedOut:
		return true
	}
	return false
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
