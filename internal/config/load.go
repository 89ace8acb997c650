package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. POOLCACHE_POOL_WORKERS.
const EnvPrefix = "POOLCACHE"

// Load reads configuration from defaults, the optional file at path and
// the environment. Environment variables take precedence over the file.
// The result is validated before it is returned.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pool.workers", 4)
	v.SetDefault("cache.max_entries", 1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.addr", "localhost:9090")
	v.SetDefault("bench.duration", "10s")
	v.SetDefault("bench.callers", 16)
	v.SetDefault("bench.keys", 10_000)
	v.SetDefault("bench.read_pct", 80)
	v.SetDefault("bench.generate_delay", "1ms")
	v.SetDefault("bench.seed", 1)
}
