package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// provider is the Provider implementation: a map of entries guarded by one
// lock, with generation and eviction callbacks delegated to a Scheduler.
type provider[K comparable, V any] struct {
	// ---- guarded by mu ----
	mu sync.RWMutex
	m  map[K]*entry[V]

	clock clock
	sched Scheduler
	opt   Options[K, V]
}

// New constructs a Provider that generates values on s.
// It panics if s or opt.Generator is nil.
// Defaults:
//   - nil Metrics -> NoopMetrics
//   - nil Logger  -> slog.Default()
func New[K comparable, V any](s Scheduler, opt Options[K, V]) Provider[K, V] {
	if s == nil {
		panic("cache: Scheduler must not be nil")
	}
	if opt.Generator == nil {
		panic("cache: Generator must not be nil")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &provider[K, V]{
		m:     make(map[K]*entry[V]),
		sched: s,
		opt:   opt,
	}
}

// ---- Provider[K,V] implementation ----

func (p *provider[K, V]) Prepare(k K) {
	p.getOrGenerate(k)
}

func (p *provider[K, V]) Get(ctx context.Context, k K) (V, error) {
	return p.getOrGenerate(k).wait(ctx, &p.clock)
}

func (p *provider[K, V]) GetIfPresent(k K) (V, bool) {
	p.mu.RLock()
	e, ok := p.m[k]
	p.mu.RUnlock()

	if ok {
		if v, present := e.peek(&p.clock); present {
			p.opt.Metrics.Hit()
			return v, true
		}
	}
	p.opt.Metrics.Miss()
	var zero V
	return zero, false
}

func (p *provider[K, V]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.m)
}

// ---- internals ----

// getOrGenerate returns the entry for k, creating a placeholder and
// scheduling its generation on a miss. Lookup, insertion and scheduling
// happen under one write lock, so concurrent callers for the same key
// always see the first caller's placeholder.
func (p *provider[K, V]) getOrGenerate(k K) *entry[V] {
	// fast path
	p.mu.RLock()
	e, ok := p.m[k]
	p.mu.RUnlock()
	if ok {
		p.opt.Metrics.Hit()
		return e
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// double-check under the write lock
	if e, ok := p.m[k]; ok {
		p.opt.Metrics.Hit()
		return e
	}

	e = newEntry[V](p.clock.tick())
	p.sched.Schedule(func() { p.generate(k, e) })
	p.m[k] = e
	p.opt.Metrics.Miss()

	// The new placeholder is pending, so the sweep never picks it.
	p.sweepLocked()
	return e
}

// generate runs on the Scheduler: it computes the value, publishes it to
// the waiters and then enforces the bound again, since a newly present
// entry may be the first evictable one. The sweep may pick e itself;
// waiters already hold e, so they still receive the value.
func (p *provider[K, V]) generate(k K, e *entry[V]) {
	start := time.Now()
	v := p.opt.Generator(k)
	p.opt.Metrics.Generated(time.Since(start))

	if err := e.fill(v); err != nil {
		p.opt.Logger.Error("cache: dropping generated value", "key", k, "err", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweepLocked()
}

// sweepLocked evicts present entries, least recently read first, until the
// bound holds or only pending entries remain.
// mu must be held for writing.
func (p *provider[K, V]) sweepLocked() {
	for len(p.m) > p.opt.MaxEntries {
		k, v, ok := p.oldestLocked()
		if !ok {
			break
		}
		delete(p.m, k)
		p.evict(k, v)
	}
	p.opt.Metrics.Size(len(p.m))
}

// oldestLocked scans all entries for the present one with the smallest
// lastAccess. Ticks are unique, so the choice does not depend on map
// iteration order.
func (p *provider[K, V]) oldestLocked() (k K, v V, ok bool) {
	var oldest uint64
	for key, e := range p.m {
		present, val, last := e.state()
		if !present {
			continue
		}
		if !ok || last < oldest {
			k, v, oldest, ok = key, val, last, true
		}
	}
	return k, v, ok
}

// evict reports the removal and schedules OnEvict; it never calls the
// listener on the current goroutine.
func (p *provider[K, V]) evict(k K, v V) {
	p.opt.Metrics.Evict()
	p.opt.Logger.Debug("cache: evicted entry", "key", k)
	if cb := p.opt.OnEvict; cb != nil {
		p.sched.Schedule(func() { cb(k, v) })
	}
}
