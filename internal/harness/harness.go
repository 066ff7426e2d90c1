package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/verify"
	"github.com/roach88/jcheck/internal/writer"
)

// Harness runs scenarios against a single journal.
type Harness struct {
	journal journal.Journal
	scanner verify.Scanner
	logger  *slog.Logger
	out     io.Writer
	runID   func() string
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithScanner replaces the default unbounded verifier.
func WithScanner(s verify.Scanner) Option {
	return func(h *Harness) { h.scanner = s }
}

// WithOutput sets where PASS/FAIL lines are printed. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(h *Harness) { h.out = w }
}

// WithRunID fixes the run id, for reproducible reports.
func WithRunID(id string) Option {
	return func(h *Harness) { h.runID = func() string { return id } }
}

// New creates a harness over j. The caller keeps ownership of j.
func New(j journal.Journal, opts ...Option) *Harness {
	h := &Harness{
		journal: j,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:     os.Stderr,
		runID:   newRunID,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.scanner == nil {
		h.scanner = verify.New(verify.Options{}, h.logger)
	}
	return h
}

// newRunID returns a time-ordered UUIDv7, falling back to v4.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Run executes one scenario and prints its PASS/FAIL line.
func (h *Harness) Run(ctx context.Context, sc Scenario) ScenarioResult {
	return h.run(ctx, h.logger, sc)
}

// RunAll executes scenarios in order. It never stops early; the report
// passes only if every scenario passed.
func (h *Harness) RunAll(ctx context.Context, scenarios []Scenario) *Report {
	report := NewReport(h.runID())
	logger := h.logger.With("run_id", report.RunID)

	logger.Info("run started", "scenarios", len(scenarios))
	for _, sc := range scenarios {
		report.Add(h.run(ctx, logger, sc))
	}
	logger.Info("run finished",
		"pass", report.Pass,
		"passed", report.Passed,
		"failed", report.Failed,
	)
	return report
}

func (h *Harness) run(ctx context.Context, logger *slog.Logger, sc Scenario) ScenarioResult {
	logger = logger.With("scenario", sc.Name)
	res := newResult(sc)

	h.execute(ctx, logger, sc, res)

	succeeded := res.Pass
	status := "PASS"
	if !succeeded {
		status = "FAIL"
	}
	fmt.Fprintf(h.out, "%s: %s\n", status, sc.Name)

	if sc.ExpectFailure {
		invert(sc, res)
	}

	logger.Info("scenario finished",
		"succeeded", succeeded,
		"pass", res.Pass,
		"outcome", res.Outcome,
		"error_kind", res.ErrorKind,
	)
	return *res
}

// invert applies a negative scenario's expectation to its result.
func invert(sc Scenario, res *ScenarioResult) {
	switch {
	case res.Pass:
		res.Pass = false
		res.Errors = append(res.Errors, "expected failure, but the record was written and found")
	case sc.ExpectKind != KindNone && res.ErrorKind != sc.ExpectKind:
		res.Errors = append(res.Errors,
			fmt.Sprintf("expected %s failure, got %s", sc.ExpectKind, res.ErrorKind))
	default:
		res.Pass = true
	}
}

// execute writes the payload and verifies it. It stops at the first
// failing step.
func (h *Harness) execute(ctx context.Context, logger *slog.Logger, sc Scenario, res *ScenarioResult) {
	w, err := writer.New(h.journal, writer.Config{
		Severity:    sc.Identity.Severity,
		Augment:     sc.Identity.Augment,
		RecordingID: sc.Identity.RecordingID,
		Username:    sc.Identity.Username,
		SessionID:   sc.Identity.SessionID,
	})
	if err != nil {
		logger.Debug("writer construction failed", "error", err)
		res.fail(KindConstruction, err.Error())
		return
	}
	if !w.IsValid() {
		res.fail(KindConstruction, "writer is not valid")
		return
	}

	if err := w.Write(ctx, sc.Expectation.CorrelationID, sc.Payload); err != nil {
		logger.Debug("write failed", "error", err)
		res.fail(KindWrite, err.Error())
		return
	}
	logger.Debug("record written", "id", sc.Expectation.CorrelationID)

	scan, err := h.scanner.Verify(ctx, h.journal, sc.Expectation)
	res.Outcome = scan.Outcome
	res.Visited = scan.Visited
	res.Attempts = scan.Attempts
	if err != nil {
		logger.Warn("journal scan failed", "error", err)
		res.fail(KindStore, err.Error())
		return
	}
	if !scan.Found {
		res.fail(KindMiss, fmt.Sprintf("no entry matched %s (%s after %d entries)",
			sc.Expectation, scan.Outcome, scan.Visited))
		return
	}
	res.Cursor = scan.Entry.Cursor
}
