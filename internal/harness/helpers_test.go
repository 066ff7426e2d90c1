package harness

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/jcheck/internal/store"
	"github.com/roach88/jcheck/internal/testutil"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:", store.WithCursorGenerator(testutil.NewSequenceCursors()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestHarness returns a harness with a fixed run id and captured output.
func newTestHarness(t *testing.T, opts ...Option) (*Harness, *store.Store, *bytes.Buffer) {
	t.Helper()
	s := openStore(t)
	var out bytes.Buffer
	opts = append([]Option{WithOutput(&out), WithRunID("test-run")}, opts...)
	return New(s, opts...), s, &out
}
