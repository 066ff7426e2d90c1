package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceCursors_Sequence(t *testing.T) {
	g := NewSequenceCursors()
	assert.Equal(t, "cursor-000001", g.Generate())
	assert.Equal(t, "cursor-000002", g.Generate())
	assert.Equal(t, int64(2), g.Current())
}

func TestSequenceCursors_Reset(t *testing.T) {
	g := NewPrefixedCursors("redis")
	g.Generate()
	g.Generate()
	g.Reset()
	assert.Equal(t, int64(0), g.Current())
	assert.Equal(t, "redis-000001", g.Generate())
}

func TestSequenceCursors_Concurrent(t *testing.T) {
	g := NewSequenceCursors()
	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := g.Generate()
			mu.Lock()
			seen[c] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50, "cursors must be unique")
	assert.Equal(t, int64(50), g.Current())
}
