package gotenant

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries engine and cache settings sourced from the environment.
// Apply the engine fields with Builder.FromConfig and build the cache side
// with NewMemoryCacheFromConfig.
type Config struct {
	RoleHierarchy       bool          `env:"GOTENANT_ROLE_HIERARCHY" envDefault:"false"`
	Wildcard            bool          `env:"GOTENANT_WILDCARD" envDefault:"false"`
	MaxInheritDepth     int           `env:"GOTENANT_MAX_INHERIT_DEPTH" envDefault:"16"`
	PermissionNormalize bool          `env:"GOTENANT_PERMISSION_NORMALIZE" envDefault:"true"`
	CacheCapacity       int           `env:"GOTENANT_CACHE_CAPACITY" envDefault:"0"`
	CacheTTL            time.Duration `env:"GOTENANT_CACHE_TTL" envDefault:"0"`
	CacheShards         int           `env:"GOTENANT_CACHE_SHARDS" envDefault:"0"`
}

var loadDotEnvOnce sync.Once

// LoadConfig parses Config from environment variables. The default .env
// file, if present, is loaded once per process before the first parse.
func LoadConfig() (Config, error) {
	loadDotEnvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// NewMemoryCacheFromConfig builds a MemoryCache from the cache fields of a
// Config. A zero CacheCapacity yields a disabled cache.
func NewMemoryCacheFromConfig(cfg Config) *MemoryCache {
	var opts []MemoryCacheOption
	if cfg.CacheTTL > 0 {
		opts = append(opts, WithTTL(cfg.CacheTTL))
	}
	if cfg.CacheShards > 0 {
		opts = append(opts, WithShards(cfg.CacheShards))
	}
	return NewMemoryCache(cfg.CacheCapacity, opts...)
}
