package pool

import (
	"log/slog"
	"time"
)

// Metrics exposes pool-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	// Queued is called after a task was appended to the queue.
	Queued()
	// Done is called after a task returned (or panicked) with its run time.
	Done(d time.Duration)
	// Panicked is called when a task panic was recovered by a worker.
	Panicked()
	// Dropped is called for tasks scheduled after Terminate.
	Dropped()
	// Abandoned is called once by Terminate with the number of queued
	// tasks that will never run.
	Abandoned(n int)
}

// Option configures a WorkerPool.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	metrics Metrics
}

// WithLogger sets the logger used for lifecycle events and recovered panics.
// Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics plugs an observability backend (see metrics/prom).
func WithMetrics(m Metrics) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}
