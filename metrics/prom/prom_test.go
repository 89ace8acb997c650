package prom

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/poolcache/cache"
	"github.com/IvanBrykalov/poolcache/pool"
)

func TestAdapter_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "pc", "test", prometheus.Labels{"app": "unit"})

	a.Hit()
	a.Hit()
	a.Miss()
	a.Evict()
	a.Size(7)
	a.Generated(20 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(a.hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.evicts))
	assert.Equal(t, 7.0, testutil.ToFloat64(a.sizeEnt))
	assert.Equal(t, 1, testutil.CollectAndCount(a.generation))
}

// Wire both adapters into a running pool and provider and check that the
// exported series move.
func TestAdapters_EndToEnd(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	pm := NewPool(reg, "pc", "pool", nil)
	cm := New(reg, "pc", "cache", nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := pool.New(2, pool.WithLogger(logger), pool.WithMetrics(pm))
	p.Start()
	t.Cleanup(func() { p.Terminate(); p.Wait() })

	c := cache.New[int, int](p, cache.Options[int, int]{
		MaxEntries: 1,
		Generator:  func(k int) int { return k + 1 },
		Metrics:    cm,
		Logger:     logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for k := range 3 {
		v, err := c.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, k+1, v)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(cm.misses))
	assert.GreaterOrEqual(t, testutil.ToFloat64(cm.evicts), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(pm.queued), 3.0)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(pm.finished) >= 3
	}, time.Second, 5*time.Millisecond)

	p.Terminate()
	p.Wait()
	p.Schedule(func() {})
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.dropped))
	assert.Equal(t, 0.0, testutil.ToFloat64(pm.backlog), "backlog must drain after Terminate")
}

// Tasks still queued at Terminate leave the backlog through Abandoned.
func TestPoolAdapter_AbandonedDrainsBacklog(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	pm := NewPool(reg, "pc", "pool", nil)
	p := pool.New(1, pool.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), pool.WithMetrics(pm))

	for range 3 {
		p.Schedule(func() {})
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(pm.backlog))

	p.Terminate()
	assert.Equal(t, 3.0, testutil.ToFloat64(pm.abandoned))
	assert.Equal(t, 0.0, testutil.ToFloat64(pm.backlog))
}
