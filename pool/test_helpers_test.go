package pool

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingMetrics records pool signals for assertions.
type countingMetrics struct {
	queued    atomic.Int64
	done      atomic.Int64
	panicked  atomic.Int64
	dropped   atomic.Int64
	abandoned atomic.Int64
}

func (m *countingMetrics) Queued()            { m.queued.Add(1) }
func (m *countingMetrics) Done(time.Duration) { m.done.Add(1) }
func (m *countingMetrics) Panicked()          { m.panicked.Add(1) }
func (m *countingMetrics) Dropped()           { m.dropped.Add(1) }
func (m *countingMetrics) Abandoned(n int)    { m.abandoned.Add(int64(n)) }

func newTestPool(workers int, m Metrics) *WorkerPool {
	opts := []Option{WithLogger(discardLogger())}
	if m != nil {
		opts = append(opts, WithMetrics(m))
	}
	return New(workers, opts...)
}
