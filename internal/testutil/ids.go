package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SequenceGenerator produces UUID-shaped IDs from a resettable counter,
// so the same test run yields the same IDs every time.
//
// The first call to Generate returns 00000000-0000-7000-8000-000000000001.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu  sync.Mutex
	seq int64
}

// NewSequenceGenerator creates a generator starting at 0.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

// Generate increments the counter and returns the matching ID.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", g.seq)
}

// Current returns how many IDs have been generated.
func (g *SequenceGenerator) Current() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence. After Reset, Generate returns the first ID
// again.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}

// FixedGenerator returns the same ID every time.
type FixedGenerator struct {
	id string
}

// NewFixedGenerator creates a generator for id. An empty id is replaced by
// the nil UUID.
func NewFixedGenerator(id string) *FixedGenerator {
	if id == "" {
		id = uuid.Nil.String()
	}
	return &FixedGenerator{id: id}
}

// Generate returns the fixed ID.
func (g *FixedGenerator) Generate() string {
	return g.id
}
