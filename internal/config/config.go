// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Cache backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config is the process configuration.
type Config struct {
	DatabaseURL        string        `env:"DATABASE_URL,required"`
	Addr               string        `env:"SONGBOARD_ADDR"                 envDefault:"127.0.0.1:8080"`
	CacheBackend       string        `env:"SONGBOARD_CACHE_BACKEND"        envDefault:"memory"`
	CacheCompression   int           `env:"SONGBOARD_CACHE_COMPRESSION"    envDefault:"3"`
	RetryDelay         time.Duration `env:"SONGBOARD_RETRY_DELAY"          envDefault:"1s"`
	HealthInterval     time.Duration `env:"SONGBOARD_HEALTH_INTERVAL"      envDefault:"60s"`
	LogLevel           string        `env:"SONGBOARD_LOG_LEVEL"            envDefault:"info"`
	PublicDefaultLimit int           `env:"SONGBOARD_PUBLIC_DEFAULT_LIMIT" envDefault:"20"`
	Timezone           string        `env:"SONGBOARD_TIMEZONE"`
}

// Load reads envFile into the environment, if it exists, and parses Config.
// An empty envFile means ".env". A missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}
	return parse(env.Options{})
}

// Parse reads Config from the given variables instead of the process
// environment.
func Parse(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CacheBackend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	if c.CacheCompression < 0 {
		return fmt.Errorf("cache compression level must not be negative, got %d", c.CacheCompression)
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("health interval must be positive, got %s", c.HealthInterval)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", c.RetryDelay)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the display zone for formatted timestamps.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// NewLogger builds the process logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}
