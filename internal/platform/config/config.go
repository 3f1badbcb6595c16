// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

A local .env file is loaded first (when present) with 'joho/godotenv', then
'caarlos0/env' maps OS environment variables into a strongly-typed struct,
providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to clients, stores and servers via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the storefront client and the
// development backend.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Store API
	APIBaseURL string        `env:"STORE_API_BASE_URL" envDefault:"http://localhost:8000/api/v1"`
	APITimeout time.Duration `env:"STORE_API_TIMEOUT"  envDefault:"15s"`

	// Local persistence
	StorageDriver    string `env:"STORAGE_DRIVER"    envDefault:"file"`
	StoragePath      string `env:"STORAGE_PATH"`
	StorageNamespace string `env:"STORAGE_NAMESPACE" envDefault:"shopfront"`
	RedisURL         string `env:"REDIS_URL"`

	// Notifications
	ToastRemoveDelay time.Duration `env:"TOAST_REMOVE_DELAY" envDefault:"1s"`
	ToastLimit       int           `env:"TOAST_LIMIT"        envDefault:"20"`

	// Locale override. Empty means "use the stored preference".
	Locale string `env:"LOCALE"`

	// Logging sink. Empty LogFile writes to stderr.
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB"  envDefault:"10"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS"  envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`

	// Development backend
	DevAPIPort         string        `env:"DEVAPI_PORT"          envDefault:"8000"`
	DevAPIJWTSecret    string        `env:"DEVAPI_JWT_SECRET"    envDefault:"dev-secret-change-me"`
	DevAPITokenTTL     time.Duration `env:"DEVAPI_TOKEN_TTL"     envDefault:"24h"`
	DevAPIFixedOTP     string        `env:"DEVAPI_FIXED_OTP"`
	DevAPIFlatEnvelope bool          `env:"DEVAPI_FLAT_ENVELOPE" envDefault:"false"`
	DevAPIOTPPerMinute int           `env:"DEVAPI_OTP_RATE"      envDefault:"3"`
	DevAPISeed         bool          `env:"DEVAPI_SEED"          envDefault:"true"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a
// [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is expected outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current environment into a [Config] without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.StorageDriver == StorageFile && cfg.StoragePath == "" {
		cfg.StoragePath = defaultStoragePath()
	}

	return cfg, nil
}

// validate enforces cross-field constraints that struct tags cannot express.
func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageFile:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("config: REDIS_URL is required when STORAGE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.ToastLimit < 1 {
		return fmt.Errorf("config: TOAST_LIMIT must be positive, got %d", c.ToastLimit)
	}

	return nil
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// defaultStoragePath places the state file under the user's home directory,
// falling back to the working directory.
func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".shopfront", "state.json")
	}
	return filepath.Join(home, ".shopfront", "state.json")
}
