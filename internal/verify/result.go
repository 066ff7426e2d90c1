package verify

import (
	"errors"
	"fmt"

	"github.com/roach88/jcheck/internal/journal"
)

// Outcome says why a scan stopped.
type Outcome string

const (
	OutcomeFound        Outcome = "found"
	OutcomeExhausted    Outcome = "exhausted"
	OutcomeLimitReached Outcome = "limit_reached"
	OutcomeTimedOut     Outcome = "timed_out"
	OutcomeCancelled    Outcome = "cancelled"
	OutcomeStoreError   Outcome = "store_error"
)

// ScanResult is the outcome of one Verify call.
type ScanResult struct {
	Found    bool
	Outcome  Outcome
	Visited  int            // entries examined, including the match
	Attempts int            // scans performed; more than 1 only with Retrying
	Entry    *journal.Entry // the matching entry when Found
}

// StoreError wraps a failure to open or read the journal.
type StoreError struct {
	Op  string // "open" or "read"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("journal %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err is or wraps a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
