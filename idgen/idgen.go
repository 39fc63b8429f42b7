// Package idgen hands out the sequential identifiers used for COCO image and
// annotation records.
package idgen

import "sync"

// Generator is a counter producing strictly increasing ID numbers starting at
// a given base
type Generator struct {
	next int64
	sync.Mutex
}

// NewGenerator returns a Generator whose first ID is start
func NewGenerator(start int64) *Generator {
	return &Generator{next: start}
}

// GetNext returns the next ID and advances the counter
func (g *Generator) GetNext() int64 {
	g.Lock()
	defer g.Unlock()
	id := g.next
	g.next++
	return id
}

// Reserve claims a contiguous block of n IDs and returns the first one.  The
// caller owns first..first+n-1.  A non positive n reserves nothing and returns
// the ID the next call would receive.
func (g *Generator) Reserve(n int) int64 {
	g.Lock()
	defer g.Unlock()
	first := g.next

	if n > 0 {
		g.next += int64(n)
	}

	return first
}

// Peek returns the ID that the next call to GetNext will return
func (g *Generator) Peek() int64 {
	g.Lock()
	defer g.Unlock()
	return g.next
}
