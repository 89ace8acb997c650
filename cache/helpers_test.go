package cache

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/IvanBrykalov/poolcache/pool"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startPool returns a running pool that is terminated when the test ends.
func startPool(t testing.TB, workers int) *pool.WorkerPool {
	t.Helper()
	p := pool.New(workers, pool.WithLogger(discardLogger()))
	p.Start()
	t.Cleanup(func() {
		p.Terminate()
		p.Wait()
	})
	return p
}

// drain waits until every task queued on a single-worker pool before the
// call has finished.
func drain(t testing.TB, p *pool.WorkerPool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := pool.ScheduleWithResult(p, func() struct{} { return struct{}{} }).Wait(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}
}

// presentCount returns how many entries hold a value.
func presentCount[K comparable, V any](c Provider[K, V]) int {
	p := c.(*provider[K, V])
	p.mu.RLock()
	defer p.mu.RUnlock()
	n := 0
	for _, e := range p.m {
		if present, _, _ := e.state(); present {
			n++
		}
	}
	return n
}

// manualScheduler queues tasks until the test runs them explicitly.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

func (s *manualScheduler) Schedule(task func()) {
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
}

func (s *manualScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// runAll executes queued tasks in FIFO order, including tasks they queue,
// and returns how many ran.
func (s *manualScheduler) runAll() int {
	n := 0
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.mu.Unlock()
			return n
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mu.Unlock()
		task()
		n++
	}
}

type eviction[K comparable, V any] struct {
	k K
	v V
}

// recorder collects OnEvict calls.
type recorder[K comparable, V any] struct {
	mu  sync.Mutex
	got []eviction[K, V]
	ch  chan eviction[K, V]
}

func newRecorder[K comparable, V any]() *recorder[K, V] {
	return &recorder[K, V]{ch: make(chan eviction[K, V], 1024)}
}

func (r *recorder[K, V]) onEvict(k K, v V) {
	r.mu.Lock()
	r.got = append(r.got, eviction[K, V]{k, v})
	r.mu.Unlock()
	r.ch <- eviction[K, V]{k, v}
}

func (r *recorder[K, V]) all() []eviction[K, V] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]eviction[K, V](nil), r.got...)
}

// next waits for one eviction callback.
func (r *recorder[K, V]) next(t testing.TB) eviction[K, V] {
	t.Helper()
	select {
	case ev := <-r.ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for eviction callback")
		return eviction[K, V]{}
	}
}
