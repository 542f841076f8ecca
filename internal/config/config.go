package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the service configuration. Environment variables are parsed
// from the AVATIMES_ prefix, e.g. AVATIMES_HTTP_PORT.
type Config struct {
	// DBDriver selects the persistence backend: sqlite, postgres or memory.
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`

	SqlitePath  string `envconfig:"SQLITE_PATH" default:"data/avatimes.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// ReplyDelayMS is how long the reply simulator waits before answering a
	// direct message. Zero disables the simulator.
	ReplyDelayMS int `envconfig:"REPLY_DELAY_MS" default:"2000"`

	// SeedDemoData controls whether empty collections are populated with the
	// built-in demo content on first access.
	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"true"`
}

// Validate checks driver selection and its required settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SqlitePath == "" {
			return fmt.Errorf("AVATIMES_SQLITE_PATH required for sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("AVATIMES_POSTGRES_DSN required for postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.ReplyDelayMS < 0 {
		return fmt.Errorf("invalid REPLY_DELAY_MS: %d", c.ReplyDelayMS)
	}
	return nil
}

// New parses the environment into a Config.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("AVATIMES", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Int("reply_delay_ms", cfg.ReplyDelayMS).
		Bool("seed_demo_data", cfg.SeedDemoData).
		Msg("Configuration loaded")

	return &cfg, nil
}
