// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting. Values come from the process
// environment, optionally seeded from a .env file in the working directory.
type Config struct {
	Env          string        `env:"GOODSDB_ENV" envDefault:"local"`
	Port         int           `env:"GOODSDB_PORT" envDefault:"8080"`
	DatabasePath string        `env:"GOODSDB_DB_PATH" envDefault:"goods.db"`
	SchemaPath   string        `env:"GOODSDB_SCHEMA_PATH"`
	JWTSecret    string        `env:"GOODSDB_JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL     time.Duration `env:"GOODSDB_TOKEN_TTL" envDefault:"24h"`
}

// Load reads an optional .env file into the process environment and parses
// it into a Config. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
