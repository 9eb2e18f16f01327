package pgstore

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config controls the PostgreSQL connection pool. Fields are populated from
// environment variables.
type Config struct {
	ConnectionString  string        `env:"PGSTORE_CONN_URL,required"`                   // ConnectionString is the connection string to the database.
	MaxOpenConns      int32         `env:"PGSTORE_MAX_OPEN_CONNS" envDefault:"10"`      // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns      int32         `env:"PGSTORE_MAX_IDLE_CONNS" envDefault:"5"`       // MaxIdleConns is the maximum number of idle connections.
	HealthCheckPeriod time.Duration `env:"PGSTORE_HEALTHCHECK_PERIOD" envDefault:"1m"`  // HealthCheckPeriod is the period between pool health checks.
	MaxConnIdleTime   time.Duration `env:"PGSTORE_MAX_CONN_IDLE_TIME" envDefault:"10m"` // MaxConnIdleTime is how long a connection may idle before being closed.
	MaxConnLifetime   time.Duration `env:"PGSTORE_MAX_CONN_LIFETIME" envDefault:"30m"`  // MaxConnLifetime is how long a connection may be reused.

	RetryAttempts int           `env:"PGSTORE_RETRY_ATTEMPTS" envDefault:"3"` // RetryAttempts is the number of connection attempts.
	RetryInterval time.Duration `env:"PGSTORE_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the base wait between attempts.
}

var defaultEnvLoaded sync.Once

// LoadConfig populates Config from the environment, loading a .env file
// first when one exists.
func LoadConfig() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrFailedToParseConfig, err)
	}
	return cfg, nil
}
