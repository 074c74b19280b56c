package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the environment-driven execution defaults consumed by
// NewFromEnv.
type Config struct {
	// Convert enables type coercion for every call unless overridden.
	Convert bool `env:"VALIDATOR_CONVERT" envDefault:"false"`

	// Timeout is the default ceiling for asynchronous validation units.
	Timeout time.Duration `env:"VALIDATOR_TIMEOUT" envDefault:"5s"`

	// MaxConcurrency bounds parallel validation units.
	MaxConcurrency int `env:"VALIDATOR_MAX_CONCURRENCY" envDefault:"10"`
}

var (
	// ErrInvalidConfig wraps environment parsing failures.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	dotenvOnce sync.Once
)

// LoadConfig reads Config from the environment. A .env file in the working
// directory is loaded once per process; its absence is not an error.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}
	return cfg, nil
}
