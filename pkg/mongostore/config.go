package mongostore

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the MongoDB connection settings, loaded from the environment.
type Config struct {
	ConnectionURL   string        `env:"MONGOSTORE_URL,required"`                         // ConnectionURL is the URL of the database.
	Database        string        `env:"MONGOSTORE_DATABASE" envDefault:"gotenant"`       // Database holds the authorization collections.
	ConnectTimeout  time.Duration `env:"MONGOSTORE_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout is the timeout for connecting to the database.
	MaxPoolSize     uint64        `env:"MONGOSTORE_MAX_POOL_SIZE" envDefault:"100"`       // MaxPoolSize is the maximum number of pooled connections.
	MinPoolSize     uint64        `env:"MONGOSTORE_MIN_POOL_SIZE" envDefault:"1"`         // MinPoolSize is the minimum number of pooled connections.
	MaxConnIdleTime time.Duration `env:"MONGOSTORE_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime is how long a connection may sit idle in the pool.
	RetryWrites     bool          `env:"MONGOSTORE_RETRY_WRITES" envDefault:"true"`       // RetryWrites specifies whether to retry write operations.
	RetryReads      bool          `env:"MONGOSTORE_RETRY_READS" envDefault:"true"`        // RetryReads specifies whether to retry read operations.
	RetryAttempts   int           `env:"MONGOSTORE_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is the number of connection attempts before giving up.
	RetryInterval   time.Duration `env:"MONGOSTORE_RETRY_INTERVAL" envDefault:"5s"`       // RetryInterval is the delay between attempts.
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}
