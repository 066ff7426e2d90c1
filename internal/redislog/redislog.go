// Package redislog provides a journal backed by a Redis list.
//
// Each entry is msgpack-encoded and appended with RPUSH. The list index is
// the entry's position, so seq = index + 1 and the length returned by RPUSH
// is the sequence number of the entry just written. Entries are never
// trimmed.
package redislog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/jcheck/internal/journal"
	"github.com/roach88/jcheck/internal/store"
)

// DefaultKey is the list key used when Options.Key is empty.
const DefaultKey = "jcheck:journal"

// defaultPageSize is how many entries a cursor fetches per LRANGE.
const defaultPageSize = 64

// Options configures a Journal.
type Options struct {
	Key      string
	PageSize int
	Cursors  journal.CursorGenerator
}

// Journal is a Redis-backed journal. It implements journal.Journal.
type Journal struct {
	rdb      *redis.Client
	key      string
	pageSize int64
	cursors  journal.CursorGenerator
}

var _ journal.Journal = (*Journal)(nil)

// storedEntry is the msgpack wire form of an entry.
type storedEntry struct {
	Cursor  string            `msgpack:"cursor"`
	Ints    map[string]int64  `msgpack:"ints,omitempty"`
	Strings map[string]string `msgpack:"strs,omitempty"`
}

// New wraps an existing client.
func New(rdb *redis.Client, opts Options) *Journal {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Cursors == nil {
		opts.Cursors = store.UUIDv7Generator{}
	}
	return &Journal{
		rdb:      rdb,
		key:      opts.Key,
		pageSize: int64(opts.PageSize),
		cursors:  opts.Cursors,
	}
}

// Dial parses a redis:// URL, connects, and pings the server.
func Dial(ctx context.Context, url string, opts Options) (*Journal, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return New(rdb, opts), nil
}

// Close closes the underlying client.
func (j *Journal) Close() error {
	return j.rdb.Close()
}

// Append pushes rec onto the tail of the list.
func (j *Journal) Append(ctx context.Context, rec journal.Record) (journal.Entry, error) {
	se := storedEntry{
		Cursor:  j.cursors.Generate(),
		Ints:    rec.Ints,
		Strings: rec.Strings,
	}
	data, err := msgpack.Marshal(&se)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("append: encode: %w", err)
	}

	length, err := j.rdb.RPush(ctx, j.key, data).Result()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("append: %w", err)
	}
	return se.toEntry(length), nil
}

// Len returns the number of entries.
func (j *Journal) Len(ctx context.Context) (int64, error) {
	n, err := j.rdb.LLen(ctx, j.key).Result()
	if err != nil {
		return 0, fmt.Errorf("len: %w", err)
	}
	return n, nil
}

// OpenReverseCursor snapshots the list length and returns a cursor that
// pages backward from the newest entry. Entries appended after the cursor
// opens are not visited.
func (j *Journal) OpenReverseCursor(ctx context.Context) (journal.Cursor, error) {
	n, err := j.rdb.LLen(ctx, j.key).Result()
	if err != nil {
		return nil, fmt.Errorf("open reverse cursor: %w", err)
	}
	return &reverseCursor{j: j, ctx: ctx, next: n - 1}, nil
}

type reverseCursor struct {
	j    *Journal
	ctx  context.Context
	next int64 // list index of the next entry to return; -1 when done

	page      []string
	pageStart int64 // list index of page[0]
	err       error
	closed    bool
}

func (c *reverseCursor) Previous() (journal.Entry, bool) {
	if c.closed || c.err != nil || c.next < 0 {
		return journal.Entry{}, false
	}

	if c.page == nil || c.next < c.pageStart {
		if err := c.fetch(); err != nil {
			c.err = err
			return journal.Entry{}, false
		}
	}

	raw := c.page[c.next-c.pageStart]
	var se storedEntry
	if err := msgpack.Unmarshal([]byte(raw), &se); err != nil {
		c.err = fmt.Errorf("entry %d: decode: %w", c.next+1, err)
		return journal.Entry{}, false
	}
	e := se.toEntry(c.next + 1)
	c.next--
	return e, true
}

// fetch loads the page ending at c.next.
func (c *reverseCursor) fetch() error {
	start := c.next - c.j.pageSize + 1
	if start < 0 {
		start = 0
	}
	page, err := c.j.rdb.LRange(c.ctx, c.j.key, start, c.next).Result()
	if err != nil {
		return fmt.Errorf("read entries %d..%d: %w", start, c.next, err)
	}
	if int64(len(page)) != c.next-start+1 {
		return errors.New("journal list shrank while reading")
	}
	c.page = page
	c.pageStart = start
	return nil
}

func (c *reverseCursor) Err() error {
	return c.err
}

func (c *reverseCursor) Close() error {
	c.closed = true
	c.page = nil
	return nil
}

func (se storedEntry) toEntry(seq int64) journal.Entry {
	ints := make(map[string]int64, len(se.Ints))
	for k, v := range se.Ints {
		ints[k] = v
	}
	strs := make(map[string]string, len(se.Strings))
	for k, v := range se.Strings {
		strs[k] = v
	}
	return journal.Entry{
		Seq:     seq,
		Cursor:  se.Cursor,
		Ints:    ints,
		Strings: strs,
	}
}
