package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vytor/dailydle/internal/logger"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// MaxLookbackDepth bounds LOOKBACK_DEPTH. Selection cost grows linearly
// with the depth.
const MaxLookbackDepth = 60

type Config struct {
	Addr          string        `env:"ADDR" envDefault:":8080"`
	DBPath        string        `env:"DB_PATH" envDefault:"file:dailydle.db"`
	StoreDriver   string        `env:"STORE_DRIVER" envDefault:"sqlite"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"INFO"`
	Timezone      string        `env:"TIMEZONE" envDefault:"Europe/Paris"`
	LookbackDepth int           `env:"LOOKBACK_DEPTH" envDefault:"10"`
	CatalogPath   string        `env:"CATALOG_PATH"`
	WarmInterval  time.Duration `env:"WARM_INTERVAL" envDefault:"10m"`
	WorkerCount   int           `env:"WORKER_COUNT" envDefault:"1"`
	QueueSize     int           `env:"QUEUE_SIZE" envDefault:"8"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults for anything unset. Values that cannot be
// parsed into their field type are an error.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}

	switch c.StoreDriver {
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errs = append(errs, errors.New("DB_PATH cannot be empty when STORE_DRIVER=sqlite"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreSQLite, StoreMemory, c.StoreDriver))
	}

	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}

	if c.Timezone == "" {
		errs = append(errs, errors.New("TIMEZONE cannot be empty"))
	} else if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err))
	}

	if c.LookbackDepth < 0 || c.LookbackDepth > MaxLookbackDepth {
		errs = append(errs, fmt.Errorf("LOOKBACK_DEPTH must be between 0 and %d, got %d", MaxLookbackDepth, c.LookbackDepth))
	}
	if c.WarmInterval <= 0 {
		errs = append(errs, fmt.Errorf("WARM_INTERVAL must be positive, got %v", c.WarmInterval))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be at least 1, got %d", c.WorkerCount))
	}
	if c.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("QUEUE_SIZE must be at least 1, got %d", c.QueueSize))
	}

	return errors.Join(errs...)
}
