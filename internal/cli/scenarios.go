package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jcheck/internal/harness"
)

// ScenarioInfo describes a scenario without running it.
type ScenarioInfo struct {
	Name          string `json:"name"`
	ID            int64  `json:"id"`
	Mode          string `json:"mode"`
	Severity      string `json:"severity"`
	Match         string `json:"match"`
	ExpectFailure bool   `json:"expect_failure,omitempty"`
	ExpectKind    string `json:"expect_kind,omitempty"`
	Description   string `json:"description,omitempty"`
}

// NewScenariosCommand creates the scenarios command.
func NewScenariosCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenarios that would run",
		Long: `List the built-in sequence, or the scenarios of --suite after validation.

Examples:
  jcheck scenarios
  jcheck scenarios --suite ./suite.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listScenarios(opts, cmd)
		},
	}
}

func listScenarios(opts *RootOptions, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenarios, err := loadScenarios(opts)
	if err != nil {
		if opts.Format == "json" {
			_ = f.Error(ErrCodeSuite, "failed to load suite", err.Error())
		}
		return WrapExitError(ExitCommandError, "failed to load suite", err)
	}

	infos := make([]ScenarioInfo, len(scenarios))
	for i, sc := range scenarios {
		infos[i] = describe(sc)
	}

	if opts.Format == "json" {
		return f.Success(infos)
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		neg := ""
		switch {
		case info.ExpectKind != "":
			neg = fmt.Sprintf(" (expect %s failure)", info.ExpectKind)
		case info.ExpectFailure:
			neg = " (expect failure)"
		}
		fmt.Fprintf(w, "%-20s id=%-4d %-8s %s%s\n", info.Name, info.ID, info.Severity, info.Match, neg)
		f.VerboseLog("  %s", info.Description)
	}
	return nil
}

func describe(sc harness.Scenario) ScenarioInfo {
	return ScenarioInfo{
		Name:          sc.Name,
		ID:            sc.Expectation.CorrelationID,
		Mode:          sc.Expectation.Mode.String(),
		Severity:      sc.Identity.Severity.String(),
		Match:         sc.Expectation.String(),
		ExpectFailure: sc.ExpectFailure,
		ExpectKind:    string(sc.ExpectKind),
		Description:   sc.Description,
	}
}
