package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/jcheck/internal/config"
	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	LogLevel string

	// Suite is a YAML suite path; empty selects the built-in sequence.
	Suite string

	logger *slog.Logger
}

// RunOptions holds the journal and scan flags. They are persistent on the
// root command, which runs the checks when invoked without a subcommand.
type RunOptions struct {
	*RootOptions

	Backend  string
	DBPath   string
	RedisURL string
	RedisKey string

	ScanLimit    int
	ScanTimeout  time.Duration
	Retries      int
	RetryBackoff time.Duration
	Timeout      time.Duration

	// Cursors overrides the entry cursor generator (for testing).
	// If nil, the backend default (UUIDv7) is used.
	Cursors journal.CursorGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidBackends defines the allowed journal backends.
var ValidBackends = []string{config.BackendSQLite, config.BackendRedis}

// NewRootCommand creates the root command with defaults from the
// environment.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithConfig(config.Load())
}

// NewRootCommandWithConfig creates the root command with flag defaults
// taken from cfg.
func NewRootCommandWithConfig(cfg config.Config) *cobra.Command {
	opts := &RunOptions{RootOptions: &RootOptions{}}

	cmd := &cobra.Command{
		Use:   "jcheck",
		Short: "jcheck - journal writer correlation checks",
		Long: `Write records through the journal writer and verify each one can be
found again by correlation id, severity or message substring.

Without a subcommand, jcheck runs the checks (same as "jcheck run").`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isOneOf(opts.Format, ValidFormats) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if !isOneOf(opts.Backend, ValidBackends) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid backend %q: must be one of %v", opts.Backend, ValidBackends))
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.RootOptions)
			for _, w := range cfg.Warnings {
				opts.logger.Warn("ignoring environment setting", "reason", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(opts, cmd)
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	pf.StringVar(&opts.Format, "format", cfg.Output.Format, "output format (json|text)")
	pf.StringVar(&opts.LogLevel, "log-level", cfg.Output.LogLevel, "log level (debug|info|warn|error)")
	pf.StringVar(&opts.Suite, "suite", cfg.Suite, "YAML scenario suite (default: built-in sequence)")

	// Journal and scan flags
	pf.StringVar(&opts.Backend, "backend", cfg.Journal.Backend, "journal backend (sqlite|redis)")
	pf.StringVar(&opts.DBPath, "db", cfg.Journal.DBPath, "SQLite journal path (default: temporary file)")
	pf.StringVar(&opts.RedisURL, "redis-url", cfg.Journal.RedisURL, "Redis URL for the redis backend")
	pf.StringVar(&opts.RedisKey, "redis-key", cfg.Journal.RedisKey, "Redis list key for the redis backend")
	pf.IntVar(&opts.ScanLimit, "scan-limit", cfg.Scan.Limit, "max entries examined per scan (0 = unbounded)")
	pf.DurationVar(&opts.ScanTimeout, "scan-timeout", cfg.Scan.Timeout, "max duration of one scan (0 = unbounded)")
	pf.IntVar(&opts.Retries, "retries", cfg.Scan.Retries, "extra scans after a miss")
	pf.DurationVar(&opts.RetryBackoff, "retry-backoff", cfg.Scan.Backoff, "delay before the first retry, doubled each time")
	pf.DurationVar(&opts.Timeout, "timeout", cfg.Timeout, "overall run timeout (0 = none)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewScenariosCommand(opts.RootOptions))

	return cmd
}

func newLogger(w io.Writer, opts *RootOptions) *slog.Logger {
	level := logging.ParseLevel(opts.LogLevel)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return logging.Init(w, opts.Format == "json", level)
}

func isOneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
