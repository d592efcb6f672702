// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/Phate334/cattle-farm-poc/internal/store"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	StorePath   string `env:"FARM_STORE_PATH" envDefault:"./data/farm.db"`
	RedisURL    string `env:"FARM_REDIS_URL"`                          // Optional Redis URL for a shared store backend
	StorePrefix string `env:"FARM_STORE_PREFIX" envDefault:"cattlefarm:"` // Redis key prefix
	Env         string `env:"FARM_ENV" envDefault:"development"`
	LogLevel    string `env:"FARM_LOG_LEVEL" envDefault:"info"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UseRedisStore returns true if a Redis store backend is configured.
func (c Config) UseRedisStore() bool {
	return c.RedisURL != ""
}

// StoreConfig maps the configuration onto a store factory config.
func (c Config) StoreConfig() store.Config {
	cfg := store.Config{
		Type: "sqlite",
		Path: c.StorePath,
	}
	if c.UseRedisStore() {
		cfg.Type = "redis"
		cfg.RedisURL = c.RedisURL
		cfg.Prefix = c.StorePrefix
	}
	return cfg
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
