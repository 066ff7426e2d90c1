package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/jcheck/internal/harness"
	"github.com/roach88/jcheck/internal/verify"
)

// NewRunCommand creates the run command.
func NewRunCommand(opts *RunOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Write and verify the scenario sequence",
		Long: `Run each scenario: construct the writer, write the record, then scan the
journal backward for it. One PASS or FAIL line is printed per scenario.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (bad flag, journal unavailable, suite invalid)

Examples:
  jcheck run
  jcheck run --db ./journal.db --scan-limit 1000
  jcheck run --backend redis --redis-url redis://localhost:6379/0 --retries 3
  jcheck run --suite ./suite.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(opts, cmd)
		},
	}
}

func runChecks(opts *RunOptions, cmd *cobra.Command) error {
	logger := opts.logger
	if logger == nil {
		logger = newLogger(cmd.ErrOrStderr(), opts.RootOptions)
	}

	scenarios, err := loadScenarios(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suite", err)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	j, cleanup, err := openJournal(ctx, opts, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer cleanup()

	// PASS/FAIL lines share stdout with the text summary; JSON output
	// keeps stdout for the report alone.
	var lines io.Writer = cmd.OutOrStdout()
	if opts.Format == "json" {
		lines = cmd.ErrOrStderr()
	}

	h := harness.New(j,
		harness.WithLogger(logger),
		harness.WithScanner(newScanner(opts, logger)),
		harness.WithOutput(lines),
	)
	report := h.RunAll(ctx, scenarios)

	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	return f.Report(report)
}

// maxRetryBackoff caps the doubling delay between scans.
const maxRetryBackoff = 2 * time.Second

// newScanner builds the verifier from the scan flags. Retrying wraps it
// only when retries are requested.
func newScanner(opts *RunOptions, logger *slog.Logger) verify.Scanner {
	v := verify.New(verify.Options{
		MaxEntries: opts.ScanLimit,
		Timeout:    opts.ScanTimeout,
	}, logger)
	if opts.Retries <= 0 {
		return v
	}
	return &verify.Retrying{
		Verifier:   v,
		Attempts:   opts.Retries + 1,
		Backoff:    opts.RetryBackoff,
		MaxBackoff: maxRetryBackoff,
	}
}

func loadScenarios(opts *RootOptions) ([]harness.Scenario, error) {
	if opts.Suite == "" {
		return harness.DefaultScenarios(), nil
	}
	suite, err := harness.LoadSuite(opts.Suite)
	if err != nil {
		return nil, err
	}
	return suite.Scenarios, nil
}
