package pgstore

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the PostgreSQL connection settings, loaded from the
// environment.
type Config struct {
	ConnectionString  string        `env:"PGSTORE_CONN_URL,required"`                   // ConnectionString is the connection string to the database.
	MaxOpenConns      int32         `env:"PGSTORE_MAX_OPEN_CONNS" envDefault:"10"`      // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns      int32         `env:"PGSTORE_MAX_IDLE_CONNS" envDefault:"5"`       // MaxIdleConns is the maximum number of idle connections.
	HealthCheckPeriod time.Duration `env:"PGSTORE_HEALTHCHECK_PERIOD" envDefault:"1m"`  // HealthCheckPeriod is the period between pool health checks.
	MaxConnIdleTime   time.Duration `env:"PGSTORE_MAX_CONN_IDLE_TIME" envDefault:"10m"` // MaxConnIdleTime is how long a connection may sit idle before reuse.
	MaxConnLifetime   time.Duration `env:"PGSTORE_MAX_CONN_LIFETIME" envDefault:"30m"`  // MaxConnLifetime is the maximum lifetime of a pooled connection.

	RetryAttempts int           `env:"PGSTORE_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of connection attempts before giving up.
	RetryInterval time.Duration `env:"PGSTORE_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the base delay between attempts.

	MigrationsTable string `env:"PGSTORE_MIGRATIONS_TABLE" envDefault:"gotenant_schema_migrations"` // MigrationsTable stores the applied migration versions.
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}
