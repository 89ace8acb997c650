package cache

import "context"

// Provider is a bounded memoizer: values are generated at most once per key
// on a worker pool and kept until evicted.
// All methods are safe for concurrent use by multiple goroutines.
type Provider[K comparable, V any] interface {
	// Prepare schedules generation for k unless an entry for k already
	// exists (pending or present). It never blocks on generation.
	Prepare(k K)

	// Get returns the value for k, scheduling generation on a miss, and
	// blocks until the value is present. Concurrent callers for the same
	// key share one generation.
	// If ctx is done first, Get returns an error wrapping ErrInterrupted and
	// ctx.Err(); the generation keeps running and later callers can retry.
	Get(ctx context.Context, k K) (V, error)

	// GetIfPresent returns the value for k only if it has been generated.
	// It never blocks and never schedules generation.
	GetIfPresent(k K) (V, bool)

	// Len returns the number of entries, pending and present.
	Len() int
}

// Scheduler runs tasks asynchronously. *pool.WorkerPool implements it.
type Scheduler interface {
	Schedule(task func())
}
