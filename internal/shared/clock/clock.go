// Package clock provides an injectable time source.
// All storage and transport use UTC; status derivation, period arithmetic and
// worker candidate queries must take "now" from an injected Clock so that
// temporal behavior is deterministic under test.
package clock

import (
	"sync"
	"time"
)

// Clock is the time source injected into use cases and stores.
type Clock interface {
	Now() time.Time
}

// Real is the production clock. It always reports UTC.
type Real struct{}

// NewReal creates the production clock.
func NewReal() *Real {
	return &Real{}
}

// Now returns the current time in UTC.
func (*Real) Now() time.Time {
	return time.Now().UTC()
}

// Fake is a settable clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a fake clock frozen at t (converted to UTC).
func NewFake(t time.Time) *Fake {
	return &Fake{now: t.UTC()}
}

// Now returns the frozen time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t.UTC()
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
