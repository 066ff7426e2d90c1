// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceCursors generates entry cursors "cursor-000001", "cursor-000002", ...
//
// Unlike the UUIDv7 default, the output is reproducible, which keeps golden
// reports stable across runs. It can be reset for test reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceCursors struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequenceCursors creates a generator with the "cursor" prefix.
// The first call to Generate returns "cursor-000001".
func NewSequenceCursors() *SequenceCursors {
	return NewPrefixedCursors("cursor")
}

// NewPrefixedCursors creates a generator with a custom prefix.
func NewPrefixedCursors(prefix string) *SequenceCursors {
	return &SequenceCursors{prefix: prefix}
}

// Generate returns the next cursor.
func (g *SequenceCursors) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%06d", g.prefix, g.seq)
}

// Current returns how many cursors have been generated.
func (g *SequenceCursors) Current() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence. The next Generate returns "<prefix>-000001".
func (g *SequenceCursors) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
