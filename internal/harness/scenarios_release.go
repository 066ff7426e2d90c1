//go:build release

package harness

func negativeScenarios(func() int64) []Scenario {
	return nil
}
