package verify

import (
	"fmt"
	"strings"

	"github.com/roach88/jcheck/internal/journal"
)

// DefaultSubstring is the literal searched for in RawSubstring mode when the
// expectation does not name one.
const DefaultSubstring = "augment_false_test_string"

// Mode selects how entries are matched.
type Mode int

const (
	// Correlated matches on the TLOG_ID field, optionally gated by PRIORITY.
	Correlated Mode = iota
	// RawSubstring ignores TLOG_ID and matches a literal inside MESSAGE.
	RawSubstring
)

func (m Mode) String() string {
	switch m {
	case Correlated:
		return "correlated"
	case RawSubstring:
		return "raw_substring"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Expectation describes the entry a scan looks for.
type Expectation struct {
	CorrelationID int64
	Mode          Mode
	// Severity, when set, must equal the entry's PRIORITY on the same entry
	// that matched CorrelationID. Ignored in RawSubstring mode.
	Severity *journal.Severity
	// Substring overrides DefaultSubstring in RawSubstring mode.
	Substring string
}

// Needle returns the literal matched in RawSubstring mode.
func (x Expectation) Needle() string {
	if x.Substring != "" {
		return x.Substring
	}
	return DefaultSubstring
}

// Matches applies the expectation to a single entry.
//
// Correlation id and severity are compared as integers. An entry whose
// TLOG_ID or PRIORITY is absent, or stored as text, does not match.
func (x Expectation) Matches(e journal.Entry) bool {
	switch x.Mode {
	case RawSubstring:
		msg, ok := e.String(journal.FieldMessage)
		return ok && strings.Contains(msg, x.Needle())
	case Correlated:
		id, ok := e.Int(journal.FieldCorrelationID)
		if !ok || id != x.CorrelationID {
			return false
		}
		if x.Severity == nil {
			return true
		}
		prio, ok := e.Int(journal.FieldPriority)
		return ok && prio == int64(*x.Severity)
	}
	return false
}

// String renders the expectation for logs and reports.
func (x Expectation) String() string {
	if x.Mode == RawSubstring {
		return fmt.Sprintf("%s %q", x.Mode, x.Needle())
	}
	if x.Severity != nil {
		return fmt.Sprintf("%s id=%d severity=%s", x.Mode, x.CorrelationID, *x.Severity)
	}
	return fmt.Sprintf("%s id=%d", x.Mode, x.CorrelationID)
}
