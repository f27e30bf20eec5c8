package rediscache

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the Redis connection settings, loaded from the environment.
type Config struct {
	ConnectionURL  string        `env:"REDISCACHE_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the Redis URL, e.g. "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDISCACHE_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of connection attempts before giving up.
	RetryInterval  time.Duration `env:"REDISCACHE_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the delay between attempts.
	ConnectTimeout time.Duration `env:"REDISCACHE_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout bounds the whole connection phase.
	KeyPrefix      string        `env:"REDISCACHE_KEY_PREFIX" envDefault:"gotenant:"`                  // KeyPrefix namespaces all cache keys.
	TTL            time.Duration `env:"REDISCACHE_TTL" envDefault:"5m"`                                // TTL is the expiry applied to cached entries; zero disables expiry.
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}
