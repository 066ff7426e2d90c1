package harness

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/testutil"
	"github.com/roach88/jcheck/internal/verify"
	"github.com/roach88/jcheck/internal/writer"
)

func strPtr(s string) *string { return &s }

func TestRun_BasicWrite(t *testing.T) {
	h, s, out := newTestHarness(t)

	res := h.Run(context.Background(), Build("basic_write", 1, journal.SeverityInfo, true, "ABCDEF", false))
	assert.True(t, res.Pass)
	assert.Equal(t, verify.OutcomeFound, res.Outcome)
	assert.Equal(t, KindNone, res.ErrorKind)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "cursor-000001", res.Cursor)
	assert.Equal(t, "PASS: basic_write\n", out.String())

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRun_WrittenRecordFields(t *testing.T) {
	h, s, _ := newTestHarness(t)
	sc := Build("error_priority", 3, journal.SeverityErr, true, "Testing", true)
	require.True(t, h.Run(context.Background(), sc).Pass)

	cur, err := s.OpenReverseCursor(context.Background())
	require.NoError(t, err)
	defer cur.Close()
	e, ok := cur.Previous()
	require.True(t, ok)

	msg, _ := e.String(journal.FieldMessage)
	assert.Equal(t, strings.TrimSuffix(string(sc.Payload), "\n"), msg)
	id, _ := e.Int(journal.FieldCorrelationID)
	assert.Equal(t, int64(3), id)
	prio, _ := e.Int(journal.FieldPriority)
	assert.Equal(t, int64(journal.SeverityErr), prio)
	ident, _ := e.String(journal.FieldIdentifier)
	assert.Equal(t, writer.Identifier, ident)
}

func TestRun_ConstructionFailure(t *testing.T) {
	h, s, out := newTestHarness(t)
	sc := Build("no_identity", 1, journal.SeverityInfo, true, "x", false, WithIdentity(nil, strPtr("user")))

	res := h.Run(context.Background(), sc)
	assert.False(t, res.Pass)
	assert.Equal(t, KindConstruction, res.ErrorKind)
	assert.Empty(t, res.Outcome, "verification must not run")
	assert.Equal(t, "FAIL: no_identity\n", out.String())

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRun_WriteFailureSkipsVerification(t *testing.T) {
	fj := &testutil.FaultyJournal{Journal: openStore(t), FailAppend: true}
	var out bytes.Buffer
	h := New(fj, WithOutput(&out))

	res := h.Run(context.Background(), Build("basic_write", 1, journal.SeverityInfo, true, "ABCDEF", false))
	assert.False(t, res.Pass)
	assert.Equal(t, KindWrite, res.ErrorKind)
	assert.Empty(t, res.Outcome)
	assert.Zero(t, fj.Opens, "no cursor opened after a failed write")
	assert.Equal(t, "FAIL: basic_write\n", out.String())
}

func TestRun_StoreFailure(t *testing.T) {
	fj := &testutil.FaultyJournal{Journal: openStore(t), FailOpen: true}
	h := New(fj, WithOutput(&bytes.Buffer{}))

	res := h.Run(context.Background(), Build("basic_write", 1, journal.SeverityInfo, true, "ABCDEF", false))
	assert.False(t, res.Pass)
	assert.Equal(t, KindStore, res.ErrorKind)
	assert.Equal(t, verify.OutcomeStoreError, res.Outcome)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "injected failure")
}

func TestRun_Miss(t *testing.T) {
	h, _, out := newTestHarness(t)

	// Correlated expectation for a non-augmented write: TLOG_ID is never
	// emitted, so the scan exhausts.
	sc := Build("miss", 1, journal.SeverityInfo, false, "text", false)
	sc.Expectation.Mode = verify.Correlated

	res := h.Run(context.Background(), sc)
	assert.False(t, res.Pass)
	assert.Equal(t, KindMiss, res.ErrorKind)
	assert.Equal(t, verify.OutcomeExhausted, res.Outcome)
	assert.Equal(t, 1, res.Visited)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "correlated id=1")
	assert.Equal(t, "FAIL: miss\n", out.String())
}

func TestRun_WrongSeverityIsMiss(t *testing.T) {
	h, _, _ := newTestHarness(t)
	sc := Build("wrong_severity", 5, journal.SeverityInfo, true, "x", true)
	want := journal.SeverityErr
	sc.Expectation.Severity = &want

	res := h.Run(context.Background(), sc)
	assert.False(t, res.Pass)
	assert.Equal(t, KindMiss, res.ErrorKind)
}

func TestRun_NegativeScenarioInverted(t *testing.T) {
	h, _, out := newTestHarness(t)

	res := h.Run(context.Background(), Build("invalid_input", 4, journal.SeverityInfo, true, "", false,
		WithIdentity(nil, nil), ExpectFailureKind(KindConstruction)))
	assert.True(t, res.Pass)
	assert.True(t, res.ExpectFailure)
	assert.Equal(t, KindConstruction, res.ErrorKind)
	assert.Equal(t, "FAIL: invalid_input\n", out.String(), "the line shows the uninverted result")
}

func TestRun_NegativeScenarioThatSucceedsFails(t *testing.T) {
	h, _, out := newTestHarness(t)

	res := h.Run(context.Background(), Build("should_fail", 1, journal.SeverityInfo, true, "ok", false, ExpectFailure()))
	assert.False(t, res.Pass)
	assert.Equal(t, KindNone, res.ErrorKind)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "expected failure")
	assert.Equal(t, "PASS: should_fail\n", out.String())
}

func TestRun_NegativeScenarioWrongKindFails(t *testing.T) {
	// The writer accepts the identity, so the failure comes from the
	// journal instead of construction.
	fj := &testutil.FaultyJournal{Journal: openStore(t), FailOpen: true}
	var out bytes.Buffer
	h := New(fj, WithOutput(&out))

	res := h.Run(context.Background(), Build("rejected", 1, journal.SeverityInfo, true, "x", false,
		ExpectFailureKind(KindConstruction)))
	assert.False(t, res.Pass)
	assert.Equal(t, KindStore, res.ErrorKind)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "expected construction failure, got store", res.Errors[1])
	assert.Equal(t, "FAIL: rejected\n", out.String())
}

func TestRun_NegativeScenarioAnyKind(t *testing.T) {
	fj := &testutil.FaultyJournal{Journal: openStore(t), FailAppend: true}
	h := New(fj, WithOutput(&bytes.Buffer{}))

	res := h.Run(context.Background(), Build("write_fails", 1, journal.SeverityInfo, true, "x", false,
		ExpectFailure()))
	assert.True(t, res.Pass)
	assert.Equal(t, KindWrite, res.ErrorKind)
}

func TestRunAll_NegativeScenarioCountsAsPassed(t *testing.T) {
	h, _, out := newTestHarness(t)
	report := h.RunAll(context.Background(), []Scenario{
		Build("good", 1, journal.SeverityInfo, true, "a", false),
		Build("invalid_input", 2, journal.SeverityInfo, true, "", false,
			WithIdentity(nil, nil), ExpectFailureKind(KindConstruction)),
	})
	assert.True(t, report.Pass)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, "PASS: good\nFAIL: invalid_input\n", out.String())
}

func TestRunAll_ContinuesAfterFailure(t *testing.T) {
	h, _, out := newTestHarness(t)

	scenarios := []Scenario{
		Build("first", 1, journal.SeverityInfo, true, "a", false, WithIdentity(nil, nil)),
		Build("second", 2, journal.SeverityInfo, true, "b", false),
		Build("third", 3, journal.SeverityErr, true, "c", true),
	}
	report := h.RunAll(context.Background(), scenarios)

	assert.False(t, report.Pass)
	assert.Equal(t, "test-run", report.RunID)
	assert.Equal(t, 3, report.Total())
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "FAIL: first\nPASS: second\nPASS: third\n", out.String())
}

func TestRunAll_PassIsConjunction(t *testing.T) {
	// Only the first scenario fails; the report must still fail.
	h, _, _ := newTestHarness(t)
	report := h.RunAll(context.Background(), []Scenario{
		Build("bad", 1, journal.SeverityInfo, true, "a", false, WithIdentity(nil, nil)),
		Build("good", 2, journal.SeverityInfo, true, "b", false),
	})
	assert.False(t, report.Pass)
}

func TestRunAll_Empty(t *testing.T) {
	h, _, out := newTestHarness(t)
	report := h.RunAll(context.Background(), nil)
	assert.True(t, report.Pass)
	assert.Zero(t, report.Total())
	assert.Empty(t, out.String())
}

func TestRunAll_DistinctIDsIsolateScenarios(t *testing.T) {
	// A later scenario must not match an earlier record; each lookup finds
	// its own newest entry.
	h, _, _ := newTestHarness(t)
	report := h.RunAll(context.Background(), []Scenario{
		Build("one", 1, journal.SeverityInfo, true, "a", false),
		Build("two", 2, journal.SeverityInfo, true, "b", false),
	})
	require.True(t, report.Pass)
	assert.Equal(t, "cursor-000001", report.Results[0].Cursor)
	assert.Equal(t, "cursor-000002", report.Results[1].Cursor)
}

func TestRunAll_GeneratesRunID(t *testing.T) {
	h := New(openStore(t), WithOutput(&bytes.Buffer{}))
	a := h.RunAll(context.Background(), nil)
	b := h.RunAll(context.Background(), nil)
	assert.Len(t, a.RunID, 36)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunAll_LogsRunID(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h, _, _ := newTestHarness(t, WithLogger(logger))

	h.RunAll(context.Background(), []Scenario{Build("one", 1, journal.SeverityInfo, true, "a", false)})

	assert.Contains(t, logs.String(), `"run_id":"test-run"`)
	assert.Contains(t, logs.String(), `"scenario":"one"`)
	assert.Contains(t, logs.String(), `"msg":"scan finished"`, "default verifier shares the harness logger")
}

func TestRun_CustomScanner(t *testing.T) {
	h, _, _ := newTestHarness(t, WithScanner(&verify.Retrying{
		Verifier: verify.New(verify.Options{MaxEntries: 1}, nil),
		Attempts: 2,
	}))

	res := h.Run(context.Background(), Build("miss", 1, journal.SeverityInfo, false, "text", false,
		WithSubstring("absent")))
	assert.False(t, res.Pass)
	assert.Equal(t, verify.OutcomeLimitReached, res.Outcome)
	assert.Equal(t, 2, res.Attempts)
}
