package harness

import (
	"github.com/roach88/jcheck/internal/fixture"
	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/verify"
)

// BuildOption adjusts a scenario produced by Build.
type BuildOption func(*Scenario)

// WithIdentity replaces the recording id and username. A nil pointer
// leaves the field unset.
func WithIdentity(recordingID, username *string) BuildOption {
	return func(sc *Scenario) {
		sc.Identity.RecordingID = recordingID
		sc.Identity.Username = username
	}
}

// WithSubstring sets the literal matched in RawSubstring mode.
func WithSubstring(s string) BuildOption {
	return func(sc *Scenario) {
		sc.Expectation.Substring = s
	}
}

// WithDescription sets the human-readable description.
func WithDescription(d string) BuildOption {
	return func(sc *Scenario) {
		sc.Description = d
	}
}

// ExpectFailure marks the scenario as negative. Any failure kind satisfies
// it.
func ExpectFailure() BuildOption {
	return func(sc *Scenario) {
		sc.ExpectFailure = true
	}
}

// ExpectFailureKind marks the scenario as negative and requires the failure
// to be of the given kind.
func ExpectFailureKind(kind ErrorKind) BuildOption {
	return func(sc *Scenario) {
		sc.ExpectFailure = true
		sc.ExpectKind = kind
	}
}

// Build assembles a scenario around the fixed record envelope.
//
// variableText becomes the envelope's out_txt. With augment the scenario
// is matched by correlation id, and otherwise by variableText itself as it
// appears in MESSAGE.
// testSeverity adds the severity filter, which only a correlated match
// consults.
func Build(name string, correlationID int64, severity journal.Severity, augment bool,
	variableText string, testSeverity bool, opts ...BuildOption) Scenario {
	rec := fixture.RecordingID
	user := fixture.User

	sc := Scenario{
		Name:    name,
		Payload: fixture.Payload(variableText),
		Identity: Identity{
			RecordingID: &rec,
			Username:    &user,
			SessionID:   fixture.SessionID,
			Severity:    severity,
			Augment:     augment,
		},
		Expectation: verify.Expectation{
			CorrelationID: correlationID,
			Mode:          verify.Correlated,
		},
	}

	if !augment {
		sc.Expectation.Mode = verify.RawSubstring
		sc.Expectation.Substring = fixture.EncodedText(variableText)
	}
	if testSeverity {
		s := severity
		sc.Expectation.Severity = &s
	}

	for _, opt := range opts {
		opt(&sc)
	}
	return sc
}
