package prom

import (
	"time"

	"github.com/IvanBrykalov/poolcache/pool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolAdapter implements pool.Metrics.
type PoolAdapter struct {
	queued    prometheus.Counter
	finished  prometheus.Counter
	panicked  prometheus.Counter
	dropped   prometheus.Counter
	abandoned prometheus.Counter
	backlog   prometheus.Gauge
	duration  prometheus.Histogram
}

// NewPool constructs a Prometheus metrics adapter for a pool.WorkerPool.
// Arguments have the same meaning as for New.
func NewPool(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *PoolAdapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	a := &PoolAdapter{
		queued:    counter("tasks_queued_total", "Tasks accepted by the queue"),
		finished:  counter("tasks_finished_total", "Tasks that returned or panicked"),
		panicked:  counter("tasks_panicked_total", "Tasks whose panic was recovered"),
		dropped:   counter("tasks_dropped_total", "Tasks scheduled after termination"),
		abandoned: counter("tasks_abandoned_total", "Queued tasks discarded by termination"),
		backlog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "tasks_backlog",
			Help:        "Tasks queued but not finished",
			ConstLabels: constLabels,
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "task_duration_seconds",
			Help:        "Task run time",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.queued, a.finished, a.panicked, a.dropped, a.abandoned, a.backlog, a.duration)
	return a
}

func (a *PoolAdapter) Queued() {
	a.queued.Inc()
	a.backlog.Inc()
}

func (a *PoolAdapter) Done(d time.Duration) {
	a.finished.Inc()
	a.backlog.Dec()
	a.duration.Observe(d.Seconds())
}

func (a *PoolAdapter) Panicked() { a.panicked.Inc() }
func (a *PoolAdapter) Dropped()  { a.dropped.Inc() }

// Abandoned removes discarded tasks from the backlog.
func (a *PoolAdapter) Abandoned(n int) {
	a.abandoned.Add(float64(n))
	a.backlog.Sub(float64(n))
}

var _ pool.Metrics = (*PoolAdapter)(nil)
