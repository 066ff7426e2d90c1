package harness

import (
	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/verify"
)

// Identity is the writer construction metadata for a scenario.
type Identity struct {
	RecordingID *string
	Username    *string
	SessionID   uint32
	Severity    journal.Severity
	Augment     bool
}

// Scenario is one write-then-verify case.
type Scenario struct {
	Name        string
	Description string
	Expectation verify.Expectation
	// Payload is written verbatim; the verifier never parses it.
	Payload  []byte
	Identity Identity
	// ExpectFailure inverts the overall result: the scenario counts as
	// passed when the write or verification fails. Its PASS/FAIL line
	// still shows the uninverted result.
	ExpectFailure bool
	// ExpectKind, when set, is the only failure kind that satisfies
	// ExpectFailure.
	ExpectKind ErrorKind
}

// ErrorKind classifies why a scenario did not succeed.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindConstruction ErrorKind = "construction"
	KindWrite        ErrorKind = "write"
	KindStore        ErrorKind = "store"
	KindMiss         ErrorKind = "miss"
)

// ScenarioResult is the outcome of running one scenario.
type ScenarioResult struct {
	Name string `json:"name"`

	// Pass is the result counted in the report, after inversion for
	// negative scenarios.
	Pass bool `json:"pass"`

	// ExpectFailure echoes the scenario flag.
	ExpectFailure bool `json:"expect_failure,omitempty"`

	// Outcome is the scan outcome; empty when verification did not run.
	Outcome verify.Outcome `json:"outcome,omitempty"`

	// ErrorKind is set when the write-then-verify sequence failed,
	// whether or not that failure was expected.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`

	Errors []string `json:"errors,omitempty"`

	// Cursor of the matching entry when found.
	Cursor string `json:"cursor,omitempty"`

	Visited  int `json:"visited"`
	Attempts int `json:"attempts"`
}

func newResult(sc Scenario) *ScenarioResult {
	return &ScenarioResult{
		Name:          sc.Name,
		Pass:          true,
		ExpectFailure: sc.ExpectFailure,
		Errors:        []string{},
	}
}

// fail records the first failure kind and marks the result failed.
func (r *ScenarioResult) fail(kind ErrorKind, msg string) {
	if r.ErrorKind == KindNone {
		r.ErrorKind = kind
	}
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Report aggregates a run.
type Report struct {
	RunID   string           `json:"run_id"`
	Results []ScenarioResult `json:"results"`
	Pass    bool             `json:"pass"`
	Passed  int              `json:"passed"`
	Failed  int              `json:"failed"`
}

// NewReport creates an empty passing report.
func NewReport(runID string) *Report {
	return &Report{RunID: runID, Results: []ScenarioResult{}, Pass: true}
}

// Add appends a result. Pass stays true only while every result passes.
func (r *Report) Add(res ScenarioResult) {
	r.Results = append(r.Results, res)
	if res.Pass {
		r.Passed++
	} else {
		r.Failed++
		r.Pass = false
	}
}

// Total is the number of scenarios run.
func (r *Report) Total() int {
	return len(r.Results)
}
