package state

import (
	"sync"

	"github.com/google/uuid"
)

// IDFunc produces element identities. It must never return the same
// value twice.
type IDFunc func() string

// NewID is the default IDFunc: a random UUID.
func NewID() string {
	return uuid.NewString()
}

// Revision is the logical clock of a Board. Each replacement ticks it.
type Revision uint64

// Clock is a monotonic logical clock.
type Clock struct {
	counter Revision
	mu      sync.Mutex
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() Revision {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Now returns the current value without ticking.
func (c *Clock) Now() Revision {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counter
}
