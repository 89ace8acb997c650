// Command bench drives a synthetic workload through a pooled cache and
// exposes Prometheus metrics for it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/poolcache/cache"
	"github.com/IvanBrykalov/poolcache/internal/config"
	"github.com/IvanBrykalov/poolcache/internal/logger"
	pmet "github.com/IvanBrykalov/poolcache/metrics/prom"
	"github.com/IvanBrykalov/poolcache/pool"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml/json/toml); env POOLCACHE_* overrides it")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.Setup(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("bench failed", "err", err)
		os.Exit(1)
	}
}

type counters struct {
	gets, peeks, prepares, hits, evictions atomic.Uint64
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// ---- Prometheus metrics (on DefaultServeMux) ----
	poolMetrics := pmet.NewPool(nil, "poolcache", "pool", nil)
	cacheMetrics := pmet.New(nil, "poolcache", "cache", nil)
	if cfg.Metrics.Addr != "" {
		http.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.Metrics.Addr, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info("metrics: serving", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", "err", err)
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	// ---- Build pool and cache ----
	p := pool.New(cfg.Pool.Workers, pool.WithLogger(log), pool.WithMetrics(poolMetrics))
	p.Start()
	defer func() {
		p.Terminate()
		p.Wait()
	}()

	var cnt counters
	delay := cfg.Bench.GenerateDelay
	c := cache.New[string, string](p, cache.Options[string, string]{
		MaxEntries: cfg.Cache.MaxEntries,
		Generator: func(k string) string {
			time.Sleep(delay) // simulated expensive computation
			return "v:" + k
		},
		OnEvict: func(string, string) { cnt.evictions.Add(1) },
		Metrics: cacheMetrics,
		Logger:  log,
	})

	// ---- Load generation ----
	ctx, cancel := context.WithTimeout(ctx, cfg.Bench.Duration)
	defer cancel()

	keysMax := uint64(cfg.Bench.Keys - 1)
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := range cfg.Bench.Callers {
		g.Go(func() error {
			// Each caller gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			r := rand.New(rand.NewSource(cfg.Bench.Seed + int64(w)*9973))
			zipf := rand.NewZipf(r, 1.1, 1.0, keysMax)

			for ctx.Err() == nil {
				k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
				switch n := r.Intn(100); {
				case n < cfg.Bench.ReadPct:
					cnt.peeks.Add(1)
					if _, ok := c.GetIfPresent(k); ok {
						cnt.hits.Add(1)
					}
				case n < cfg.Bench.ReadPct+(100-cfg.Bench.ReadPct)/2:
					cnt.prepares.Add(1)
					c.Prepare(k)
				default:
					cnt.gets.Add(1)
					if _, err := c.Get(ctx, k); err != nil {
						if errors.Is(err, cache.ErrInterrupted) {
							return nil // workload deadline reached
						}
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	// ---- Report ----
	ops := cnt.gets.Load() + cnt.peeks.Load() + cnt.prepares.Load()
	hitRate := 0.0
	if n := cnt.peeks.Load(); n > 0 {
		hitRate = float64(cnt.hits.Load()) / float64(n) * 100
	}
	fmt.Printf("workers=%d max_entries=%d callers=%d keys=%d dur=%v seed=%d\n",
		cfg.Pool.Workers, cfg.Cache.MaxEntries, cfg.Bench.Callers, cfg.Bench.Keys, elapsed, cfg.Bench.Seed)
	fmt.Printf("ops=%d (%.0f ops/s)  get=%d  peek=%d  prepare=%d\n",
		ops, float64(ops)/elapsed.Seconds(), cnt.gets.Load(), cnt.peeks.Load(), cnt.prepares.Load())
	fmt.Printf("peek hit-rate=%.2f%%  evictions=%d  Len()=%d  queued=%d\n",
		hitRate, cnt.evictions.Load(), c.Len(), p.Queued())
	return nil
}
