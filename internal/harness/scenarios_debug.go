//go:build !release

package harness

import "github.com/roach88/jcheck/internal/journal"

// negativeScenarios exercise writer argument validation, which release
// builds leave out of the default sequence.
func negativeScenarios(id func() int64) []Scenario {
	return []Scenario{
		Build("invalid_input", id(), journal.SeverityInfo, true, "", false,
			WithIdentity(nil, nil),
			ExpectFailureKind(KindConstruction),
			WithDescription("augmenting writer without identity is rejected")),
	}
}
