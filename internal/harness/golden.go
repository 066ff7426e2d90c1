package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/jcheck/internal/canon"
)

// snapshot converts a report to the canonical map stored in golden files.
// The run id is left out; it differs on every run.
func (r *Report) snapshot() map[string]any {
	results := make([]any, len(r.Results))
	for i, res := range r.Results {
		m := map[string]any{
			"name":     res.Name,
			"pass":     res.Pass,
			"visited":  res.Visited,
			"attempts": res.Attempts,
		}
		if res.ExpectFailure {
			m["expect_failure"] = true
		}
		if res.Outcome != "" {
			m["outcome"] = string(res.Outcome)
		}
		if res.ErrorKind != KindNone {
			m["error_kind"] = string(res.ErrorKind)
		}
		if len(res.Errors) > 0 {
			m["errors"] = res.Errors
		}
		if res.Cursor != "" {
			m["cursor"] = res.Cursor
		}
		results[i] = m
	}

	return map[string]any{
		"pass":    r.Pass,
		"passed":  r.Passed,
		"failed":  r.Failed,
		"results": results,
	}
}

// CanonicalJSON renders the report the way golden files store it.
func (r *Report) CanonicalJSON() ([]byte, error) {
	return canon.Marshal(r.snapshot())
}

// AssertGolden compares the report against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, report *Report) error {
	t.Helper()

	data, err := report.CanonicalJSON()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
