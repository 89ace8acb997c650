// Package cache provides a bounded, concurrency-safe memoizer whose values
// are generated asynchronously on a worker pool.
//
// Design
//
//   - Placeholders: on a miss, Prepare and Get insert a pending entry and
//     schedule the Generator for it under one map lock. Any concurrent
//     caller for the same key finds that placeholder, so a key is generated
//     at most once per entry lifetime (single-flight).
//
//   - Blocking reads: every entry owns a one-shot ready channel that is
//     closed when the value is set, waking all waiters at once. Waiters
//     block on their entry only, never on the map, so unrelated keys stay
//     accessible during a slow generation. Get honours ctx: a cancelled
//     caller gets ErrInterrupted while the generation completes for others.
//
//   - Eviction: the sweep runs after every inserted placeholder and after
//     every completed generation. While the map holds more than MaxEntries
//     entries it removes the present entry that was read least recently.
//     Pending entries are never evicted, so the bound may be exceeded while
//     generations are in flight. A freshly generated entry can be removed
//     by its own sweep; callers already waiting on it still get the value.
//
//   - Access order: last access is a logical clock tick taken on creation
//     and on every value hand-off (Get and GetIfPresent hits). Ticks are
//     unique, so the eviction order is total and independent of wall time.
//
//   - Callbacks: Generator and OnEvict run on the Scheduler (typically a
//     *pool.WorkerPool), never on the caller's goroutine and never under a
//     cache lock.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Generated/Size
//     signals. NoopMetrics is the default; metrics/prom exports them.
//
// Basic usage
//
//	p := pool.New(4)
//	p.Start()
//	defer p.Terminate()
//
//	c := cache.New[string, []byte](p, cache.Options[string, []byte]{
//	    MaxEntries: 1024,
//	    Generator: func(k string) []byte {
//	        return render(k) // expensive
//	    },
//	    OnEvict: func(k string, v []byte) {
//	        release(v)
//	    },
//	})
//
//	c.Prepare("tile/3/4") // warm up, does not block
//	v, err := c.Get(ctx, "tile/1/2")
//	if v, ok := c.GetIfPresent("tile/3/4"); ok {
//	    _ = v
//	}
//
// Known limitation
//
// A Generator that panics leaves its entry pending for good: Get callers
// for that key wait until their ctx is done. The panic itself is recovered
// and logged by the worker pool. Callers that need retries should recover
// inside the Generator and return a value that encodes the failure.
package cache
