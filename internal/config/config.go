package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"

	"github.com/Simplici0/cabinetry/internal/model"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv         string `env:"APP_ENV" envDefault:"prod"`
	DBPath         string `env:"DB_PATH" envDefault:"./dev.db"`
	Port           string `env:"PORT" envDefault:"8080"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`

	// Engine holds the shop constants, e.g. ENGINE_KERF or ENGINE_TAX_RATE.
	Engine model.Settings `envPrefix:"ENGINE_"`
}

// Load reads .env (when present) and the environment and returns a populated
// Config.
func Load() (Config, error) {
	// Production injects real environment; the file is for local development.
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Dev reports whether the application runs in development mode.
func (c Config) Dev() bool {
	return c.AppEnv == "dev"
}
