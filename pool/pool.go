package pool

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs tasks on a fixed number of worker goroutines that share
// one unbounded FIFO queue.
//
// Lifecycle: NotStarted -> Started -> Terminated. New does not start any
// goroutine; Start and Terminate are idempotent. Terminate before Start
// moves the pool straight to Terminated and a later Start is a no-op.
//
// All methods are safe for concurrent use.
type WorkerPool struct {
	workers int
	q       *queue

	// mu serializes Start/Terminate; the flags are atomics so observers
	// never take the lock.
	mu         sync.Mutex
	started    atomic.Bool
	terminated atomic.Bool
	g          errgroup.Group

	logger  *slog.Logger
	metrics Metrics
}

// New constructs a pool with the given number of idle workers.
// It panics if workers <= 0: a pool without workers would accept tasks
// and never run them.
func New(workers int, opts ...Option) *WorkerPool {
	if workers <= 0 {
		panic(fmt.Sprintf("pool: workers must be > 0, got %d", workers))
	}
	cfg := config{
		logger:  slog.Default(),
		metrics: NoopMetrics{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WorkerPool{
		workers: workers,
		q:       newQueue(),
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// Start launches all workers. Calling it again, or after Terminate, does nothing.
func (p *WorkerPool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started.Load() || p.terminated.Load() {
		return
	}
	for i := range p.workers {
		p.g.Go(func() error {
			p.work(i)
			return nil
		})
	}
	p.started.Store(true)
	p.logger.Info("worker pool started", "workers", p.workers)
}

// Terminate signals all workers to stop. A task that is already running
// finishes; no worker dequeues another one. Tasks still in the queue are
// discarded and reported through Metrics.Abandoned. Calling it again does
// nothing.
func (p *WorkerPool) Terminate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.terminated.Load() {
		return
	}
	p.terminated.Store(true)
	abandoned, _ := p.q.close()
	if abandoned > 0 {
		p.metrics.Abandoned(abandoned)
	}
	p.logger.Info("worker pool terminated",
		"started", p.started.Load(),
		"abandoned_tasks", abandoned)
}

// Wait blocks until every worker goroutine has returned.
// It returns immediately if the pool was never started; otherwise it only
// returns after Terminate.
func (p *WorkerPool) Wait() {
	p.mu.Lock()
	started := p.started.Load()
	p.mu.Unlock()
	if started {
		_ = p.g.Wait()
	}
}

// Schedule enqueues a fire-and-forget task and returns immediately.
// Tasks scheduled after Terminate are dropped silently. A Schedule racing
// with Terminate either queues its task before the queue is closed, where
// Terminate counts it as abandoned, or drops it.
func (p *WorkerPool) Schedule(t func()) {
	if !p.q.push(t) {
		p.metrics.Dropped()
		p.logger.Debug("task dropped: pool terminated")
		return
	}
	p.metrics.Queued()
}

// ScheduleWithResult enqueues fn and returns a Future resolved with its
// result. If fn panics the Future resolves with ErrTaskPanicked and the
// panic is handled by the worker like any other task panic.
//
// It is a function rather than a method because methods cannot declare
// type parameters.
func ScheduleWithResult[T any](p *WorkerPool, fn func() T) *Future[T] {
	f := newFuture[T]()
	p.Schedule(func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.resolve(zero, fmt.Errorf("%w: %v", ErrTaskPanicked, r))
				panic(r)
			}
		}()
		f.resolve(fn(), nil)
	})
	return f
}

// IsStarted reports whether Start launched the workers.
func (p *WorkerPool) IsStarted() bool { return p.started.Load() }

// IsTerminated reports whether Terminate was called.
func (p *WorkerPool) IsTerminated() bool { return p.terminated.Load() }

// Workers returns the configured number of workers.
func (p *WorkerPool) Workers() int { return p.workers }

// Queued returns the number of tasks waiting to be dequeued.
func (p *WorkerPool) Queued() int { return p.q.len() }
