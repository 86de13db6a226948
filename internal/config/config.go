package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"local-ads/internal/config/configs"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables; nested structs are parsed with
// their envPrefix. See the configs package for defaults.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// StoreDriver selects the persistence backend: postgres or memory.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	HTTP  configs.HTTP     `envPrefix:"HTTP_"`
	Log   configs.Logger   `envPrefix:"LOG_"`
	Psql  configs.Postgres `envPrefix:"PSQL_"`
	Redis configs.Redis    `envPrefix:"REDIS_"`
	Kafka configs.Kafka    `envPrefix:"KAFKA_"`
	Cache configs.Cache    `envPrefix:"CACHE_"`
	Admin configs.Admin    `envPrefix:"ADMIN_"`
}

// Load reads an optional .env file and then the environment into a Config.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.StoreDriver {
	case DriverPostgres, DriverMemory:
	default:
		return cfg, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}
