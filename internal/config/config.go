// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mmynk/amigo/internal/records"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port     int    `env:"PORT"      envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver string `env:"STORE_DRIVER"  envDefault:"sqlite"`
	DBPath      string `env:"DB_PATH"       envDefault:"./data/party.db"`
	RedisAddr   string `env:"REDIS_ADDR"    envDefault:"localhost:6379"`
	RedisDB     int    `env:"REDIS_DB"      envDefault:"0"`
	PostgresDSN string `env:"POSTGRES_DSN"`
	BoardScope  string `env:"BOARD_SCOPE"   envDefault:"origin"`
	EventFile   string `env:"EVENT_FILE"`

	// SessionSecret signs page state. Empty means a random per-process secret.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"12h"`

	// APIKey enables gift suggestions. Its absence is a normal configuration.
	APIKey      string `env:"API_KEY"`
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads .env from the working directory, if present, then parses the environment.
// Variables already set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enum values and driver requirements.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	switch c.StoreDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if _, err := records.ParseScope(c.BoardScope); err != nil {
		return err
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid SESSION_TTL %s", c.SessionTTL)
	}
	return nil
}

// Scope returns the parsed board scope. Validate must have passed.
func (c Config) Scope() records.Scope {
	s, _ := records.ParseScope(c.BoardScope)
	return s
}
