package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	// ErrInterrupted is returned by Get when its ctx is done before the
	// value is present.
	ErrInterrupted = errors.New("cache: interrupted while waiting")

	// ErrAlreadySet reports a second fill of the same entry.
	ErrAlreadySet = errors.New("cache: value is already set")
)

// clock is a monotonic logical clock used for last-access bookkeeping.
// Every tick is unique, so access order is total.
type clock struct{ n atomic.Uint64 }

func (c *clock) tick() uint64 { return c.n.Add(1) }

// entry is the per-key record: pending until fill, then present forever.
//
// Concurrency notes:
//   - ready is closed exactly once by fill. Publishing val happens-before
//     close(ready), so every waiter woken by it observes the value.
//   - mu guards present, val and lastAccess. It is never held while
//     waiting, and it is taken after the provider's map lock, never before.
type entry[V any] struct {
	ready chan struct{}

	mu         sync.Mutex
	present    bool
	val        V
	lastAccess uint64
}

func newEntry[V any](now uint64) *entry[V] {
	return &entry[V]{
		ready:      make(chan struct{}),
		lastAccess: now,
	}
}

// fill sets the value and wakes all waiters.
func (e *entry[V]) fill(v V) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.present {
		return ErrAlreadySet
	}
	e.val = v
	e.present = true
	close(e.ready)
	return nil
}

// wait blocks until the entry is present or ctx is done, then hands the
// value over and records the access.
func (e *entry[V]) wait(ctx context.Context, c *clock) (V, error) {
	select {
	case <-e.ready:
	default:
		select {
		case <-e.ready:
		case <-ctx.Done():
			var zero V
			return zero, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastAccess = c.tick()
	return e.val, nil
}

// peek returns the value without blocking, recording the access on a hit.
func (e *entry[V]) peek(c *clock) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.present {
		var zero V
		return zero, false
	}
	e.lastAccess = c.tick()
	return e.val, true
}

// state returns a consistent view of presence, value and last access.
func (e *entry[V]) state() (present bool, v V, lastAccess uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.present, e.val, e.lastAccess
}
