// Package ident allocates unique integer identifiers for topics and
// questions. IDs are wall-clock-millisecond sized so they stay compatible
// with previously stored data, but allocation is strictly monotonic:
// rapid successive calls cannot collide the way raw timestamps can.
package ident

import (
	"sync"
	"time"
)

// Allocator hands out strictly increasing int64 identifiers.
type Allocator struct {
	mu   sync.Mutex
	last int64
}

// NewAllocator creates an Allocator seeded from the current time.
func NewAllocator() *Allocator {
	return &Allocator{last: time.Now().UnixMilli() - 1}
}

// Next returns a fresh identifier. The result is never less than or
// equal to any previously returned value, even when the clock stalls.
func (a *Allocator) Next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= a.last {
		id = a.last + 1
	}
	a.last = id
	return id
}

// Reserve advances the allocator past id so future calls cannot reuse
// identifiers already present in loaded data.
func (a *Allocator) Reserve(id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id > a.last {
		a.last = id
	}
}
