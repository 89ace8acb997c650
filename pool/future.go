package pool

import (
	"context"
	"errors"
)

// ErrTaskPanicked is returned by Future.Wait when the computation panicked.
var ErrTaskPanicked = errors.New("pool: task panicked")

// Future is the result handle of ScheduleWithResult.
// It is resolved exactly once by the single task that owns it; any number
// of goroutines may wait on it concurrently.
type Future[T any] struct {
	done chan struct{} // closed when val/err are published
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// resolve publishes the result. Publishing happens-before close(done),
// so reads after <-done observe the final values.
func (f *Future[T]) resolve(v T, err error) {
	f.val, f.err = v, err
	close(f.done)
}

// Done returns a channel that is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is available or ctx is done.
// Cancelling ctx unblocks only this caller; the computation keeps running.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryGet returns the result without blocking.
// ok is false while the computation has not finished or if it panicked.
func (f *Future[T]) TryGet() (v T, ok bool) {
	select {
	case <-f.done:
		if f.err != nil {
			return v, false
		}
		return f.val, true
	default:
		return v, false
	}
}
