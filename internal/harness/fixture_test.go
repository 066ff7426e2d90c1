package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jcheck/internal/fixture"
	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/verify"
)

func TestBuild_Augmented(t *testing.T) {
	sc := Build("basic_write", 1, journal.SeverityInfo, true, "ABCDEF", false)

	assert.Equal(t, "basic_write", sc.Name)
	assert.Equal(t, verify.Correlated, sc.Expectation.Mode)
	assert.Equal(t, int64(1), sc.Expectation.CorrelationID)
	assert.Nil(t, sc.Expectation.Severity)
	assert.Equal(t, fixture.Payload("ABCDEF"), sc.Payload)
	assert.False(t, sc.ExpectFailure)

	require.NotNil(t, sc.Identity.RecordingID)
	require.NotNil(t, sc.Identity.Username)
	assert.Equal(t, "rec-1", *sc.Identity.RecordingID)
	assert.Equal(t, "user", *sc.Identity.Username)
	assert.Equal(t, uint32(1), sc.Identity.SessionID)
	assert.True(t, sc.Identity.Augment)
	assert.Equal(t, journal.SeverityInfo, sc.Identity.Severity)
}

func TestBuild_NotAugmentedUsesSubstring(t *testing.T) {
	sc := Build("augment_false", 2, journal.SeverityInfo, false, "augment_false_test_string", false)
	assert.Equal(t, verify.RawSubstring, sc.Expectation.Mode)
	assert.Equal(t, verify.DefaultSubstring, sc.Expectation.Needle())
	assert.Contains(t, string(sc.Payload), `"out_txt":"augment_false_test_string"`)
}

func TestBuild_NotAugmentedDefaultsToOwnText(t *testing.T) {
	sc := Build("plain", 5, journal.SeverityInfo, false, "hello", false)
	assert.Equal(t, "hello", sc.Expectation.Needle())

	sc = Build("quoted", 6, journal.SeverityInfo, false, `a "b"`, false)
	assert.Equal(t, `a \"b\"`, sc.Expectation.Needle())
	assert.Contains(t, string(sc.Payload), sc.Expectation.Needle())

	sc = Build("override", 7, journal.SeverityInfo, false, "hello", false, WithSubstring("ell"))
	assert.Equal(t, "ell", sc.Expectation.Needle())
}

func TestBuild_SeverityFilter(t *testing.T) {
	sc := Build("error_priority", 3, journal.SeverityErr, true, "Testing", true)
	require.NotNil(t, sc.Expectation.Severity)
	assert.Equal(t, journal.SeverityErr, *sc.Expectation.Severity)

	sc = Build("no_filter", 3, journal.SeverityErr, true, "Testing", false)
	assert.Nil(t, sc.Expectation.Severity)
}

func TestBuild_Options(t *testing.T) {
	sc := Build("neg", 9, journal.SeverityInfo, false, "x", false,
		WithIdentity(nil, nil),
		WithSubstring("needle"),
		WithDescription("negative"),
		ExpectFailure(),
	)
	assert.Nil(t, sc.Identity.RecordingID)
	assert.Nil(t, sc.Identity.Username)
	assert.Equal(t, "needle", sc.Expectation.Substring)
	assert.Equal(t, "negative", sc.Description)
	assert.True(t, sc.ExpectFailure)
}

func TestBuild_PayloadsAreIndependent(t *testing.T) {
	a := Build("a", 1, journal.SeverityInfo, true, "one", false)
	b := Build("b", 2, journal.SeverityInfo, true, "two", false)
	a.Payload[0] = 'X'
	assert.Equal(t, byte('{'), b.Payload[0])

	*a.Identity.RecordingID = "changed"
	assert.Equal(t, "rec-1", *b.Identity.RecordingID)
}
