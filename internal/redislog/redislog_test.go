package redislog

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/testutil"
)

func newTestJournal(t *testing.T, pageSize int) (*Journal, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	j := New(rdb, Options{
		PageSize: pageSize,
		Cursors:  testutil.NewPrefixedCursors("redis"),
	})
	t.Cleanup(func() { j.Close() })
	return j, mr
}

func record(id int64, msg string) journal.Record {
	return journal.NewRecord().
		SetString(journal.FieldMessage, msg).
		SetInt(journal.FieldPriority, int64(journal.SeverityInfo)).
		SetInt(journal.FieldCorrelationID, id)
}

func drain(t *testing.T, cur journal.Cursor) []journal.Entry {
	t.Helper()
	var out []journal.Entry
	for {
		e, ok := cur.Previous()
		if !ok {
			break
		}
		out = append(out, e)
	}
	require.NoError(t, cur.Err())
	return out
}

func TestAppend_SeqFromListLength(t *testing.T) {
	j, mr := newTestJournal(t, 0)
	ctx := context.Background()

	e1, err := j.Append(ctx, record(1, "a"))
	require.NoError(t, err)
	e2, err := j.Append(ctx, record(2, "b"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), e1.Seq)
	assert.Equal(t, int64(2), e2.Seq)
	assert.Equal(t, "redis-000002", e2.Cursor)

	items, err := mr.List(DefaultKey)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestReverseCursor_PagesNewestFirst(t *testing.T) {
	// Page size smaller than the journal forces several LRANGE calls.
	j, _ := newTestJournal(t, 2)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		_, err := j.Append(ctx, record(i, "m"))
		require.NoError(t, err)
	}

	cur, err := j.OpenReverseCursor(ctx)
	require.NoError(t, err)
	defer cur.Close()

	entries := drain(t, cur)
	require.Len(t, entries, 5)
	for i, e := range entries {
		id, ok := e.Int(journal.FieldCorrelationID)
		require.True(t, ok)
		assert.Equal(t, int64(5-i), id)
		assert.Equal(t, int64(5-i), e.Seq)
	}
}

func TestReverseCursor_SnapshotAtOpen(t *testing.T) {
	j, _ := newTestJournal(t, 0)
	ctx := context.Background()

	_, err := j.Append(ctx, record(1, "before"))
	require.NoError(t, err)

	cur, err := j.OpenReverseCursor(ctx)
	require.NoError(t, err)
	defer cur.Close()

	_, err = j.Append(ctx, record(2, "after"))
	require.NoError(t, err)

	entries := drain(t, cur)
	require.Len(t, entries, 1)
	msg, _ := entries[0].String(journal.FieldMessage)
	assert.Equal(t, "before", msg)
}

func TestReverseCursor_Empty(t *testing.T) {
	j, _ := newTestJournal(t, 0)

	cur, err := j.OpenReverseCursor(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drain(t, cur))
}

func TestReverseCursor_DecodeError(t *testing.T) {
	j, mr := newTestJournal(t, 0)
	ctx := context.Background()

	_, err := j.Append(ctx, record(1, "ok"))
	require.NoError(t, err)
	_, err = mr.Push(DefaultKey, "\xc1 not msgpack")
	require.NoError(t, err)

	cur, err := j.OpenReverseCursor(ctx)
	require.NoError(t, err)
	defer cur.Close()

	_, ok := cur.Previous()
	assert.False(t, ok)
	require.Error(t, cur.Err())
	assert.Contains(t, cur.Err().Error(), "decode")
}

func TestOpenReverseCursor_ServerDown(t *testing.T) {
	j, mr := newTestJournal(t, 0)
	mr.Close()

	_, err := j.OpenReverseCursor(context.Background())
	require.Error(t, err)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	j, err := Dial(ctx, "redis://"+mr.Addr()+"/0", Options{Key: "custom"})
	require.NoError(t, err)
	defer j.Close()

	_, err = j.Append(ctx, record(7, "dialled"))
	require.NoError(t, err)

	n, err := j.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, mr.Exists("custom"))
}

func TestDial_BadURL(t *testing.T) {
	_, err := Dial(context.Background(), "not-a-url", Options{})
	require.Error(t, err)
}
