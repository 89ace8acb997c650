package cache

import (
	"log/slog"
	"time"
)

// Metrics exposes provider-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	// Hit: the key already had an entry (pending or present).
	Hit()
	// Miss: a placeholder was created, or GetIfPresent found nothing usable.
	Miss()
	Evict()
	// Generated reports how long one Generator call took.
	Generated(d time.Duration)
	Size(entries int)
}

// Options configures a Provider. Only Generator is required.
//   - nil OnEvict  => evictions are silent
//   - nil Metrics  => NoopMetrics
//   - nil Logger   => slog.Default()
type Options[K comparable, V any] struct {
	// Generator computes the value for a key. It runs on the Scheduler only,
	// at most once per entry. If it panics the entry stays pending, and
	// blocked Get callers wait until their ctx is done.
	Generator func(k K) V

	// OnEvict is called once for every evicted entry, on the Scheduler,
	// some time after the entry left the cache.
	OnEvict func(k K, v V)

	// MaxEntries bounds the number of entries. Only generated entries are
	// evicted, so pending ones may exceed the bound for a while.
	// MaxEntries <= 0 makes every generated entry evictable.
	MaxEntries int

	Metrics Metrics
	Logger  *slog.Logger
}
