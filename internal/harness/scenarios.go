package harness

import "github.com/roach88/jcheck/internal/journal"

// DefaultScenarios returns the built-in sequence. Correlation ids are
// assigned from a counter starting at 1 so that no scenario can match a
// record written by an earlier one.
func DefaultScenarios() []Scenario {
	var next int64
	id := func() int64 {
		next++
		return next
	}

	scenarios := []Scenario{
		Build("basic_write", id(), journal.SeverityInfo, true, "ABCDEF", false,
			WithDescription("augmented record found by correlation id")),
		Build("augment_false", id(), journal.SeverityInfo, false, "augment_false_test_string", false,
			WithDescription("plain record found by MESSAGE substring")),
		Build("error_priority", id(), journal.SeverityErr, true, "Testing", true,
			WithDescription("correlation id and severity match on one entry")),
	}
	return append(scenarios, negativeScenarios(id)...)
}
