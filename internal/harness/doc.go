// Package harness runs write-then-verify scenarios against a journal.
//
// Each scenario constructs a writer from its Identity, writes its Payload
// under the scenario's correlation id, and scans the journal for the
// record using its Expectation. The harness prints one line per scenario:
//
//	PASS: basic_write
//	FAIL: error_priority
//
// Scenarios run strictly in order against one journal handle. A failure
// is recorded on the scenario's result and never stops the run.
//
// # Negative scenarios
//
// A scenario with ExpectFailure counts as passed in the Report when a step
// fails, and when ExpectKind is set the failure must be of that kind. Its
// printed line is not inverted, so a rejected writer shows
//
//	FAIL: invalid_input
//
// while the run as a whole still passes. The result carries the ErrorKind
// and messages of the failure.
//
// # Suites
//
// DefaultScenarios returns the built-in sequence. LoadSuite reads a YAML
// file whose shape is checked against an embedded CUE schema before the
// scenarios are built.
//
// # Golden files
//
// AssertGolden compares the canonical JSON of a Report against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
