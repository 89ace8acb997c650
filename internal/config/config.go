package config

import "time"

// Config holds all settings of the bench command.
type Config struct {
	Pool    PoolConfig    `mapstructure:"pool" validate:"required"`
	Cache   CacheConfig   `mapstructure:"cache" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Bench   BenchConfig   `mapstructure:"bench" validate:"required"`
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	Workers int `mapstructure:"workers" validate:"gt=0"`
}

// CacheConfig configures the provider. MaxEntries <= 0 is valid and makes
// every generated entry evictable.
type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// MetricsConfig configures the Prometheus endpoint; an empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// BenchConfig describes the synthetic workload.
type BenchConfig struct {
	Duration      time.Duration `mapstructure:"duration" validate:"gt=0"`
	Callers       int           `mapstructure:"callers" validate:"gt=0"`
	Keys          int           `mapstructure:"keys" validate:"gt=1"`
	ReadPct       int           `mapstructure:"read_pct" validate:"gte=0,lte=100"`
	GenerateDelay time.Duration `mapstructure:"generate_delay" validate:"gte=0"`
	Seed          int64         `mapstructure:"seed"`
}
