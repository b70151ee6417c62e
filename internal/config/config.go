// Package config loads runtime configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/TelmenBay/leetlog/internal/leetcode"
	"github.com/TelmenBay/leetlog/internal/store"
)

// Config holds all runtime settings.
type Config struct {
	DBDriver string
	// DB is a file path for sqlite or a DSN for postgres. Empty means the
	// default data path.
	DB            string
	HTTPAddr      string
	LogMode       string
	RedisAddr     string
	CacheTTL      time.Duration
	Endpoint      string
	FetchTimeout  time.Duration
	SweepInterval time.Duration
	User          string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		DBDriver:      store.DriverSQLite,
		HTTPAddr:      ":8080",
		LogMode:       "dev",
		CacheTTL:      24 * time.Hour,
		Endpoint:      leetcode.DefaultEndpoint,
		FetchTimeout:  15 * time.Second,
		SweepInterval: time.Hour,
		User:          "local",
	}
}

// Load reads .env from the working directory when present, then overlays
// LEETLOG_* environment variables onto the defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := Default()

	setString(&cfg.DBDriver, "LEETLOG_DB_DRIVER")
	setString(&cfg.DB, "LEETLOG_DB")
	setString(&cfg.HTTPAddr, "LEETLOG_HTTP_ADDR")
	setString(&cfg.LogMode, "LEETLOG_LOG_MODE")
	setString(&cfg.RedisAddr, "LEETLOG_REDIS_ADDR")
	setString(&cfg.Endpoint, "LEETLOG_LEETCODE_ENDPOINT")
	setString(&cfg.User, "LEETLOG_USER")

	for key, dst := range map[string]*time.Duration{
		"LEETLOG_CACHE_TTL":      &cfg.CacheTTL,
		"LEETLOG_FETCH_TIMEOUT":  &cfg.FetchTimeout,
		"LEETLOG_SWEEP_INTERVAL": &cfg.SweepInterval,
	} {
		if err := setDuration(dst, key); err != nil {
			return Config{}, err
		}
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown drivers and modes and negative durations.
func (c Config) Validate() error {
	switch c.DBDriver {
	case store.DriverSQLite, store.DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver: %q", c.DBDriver)
	}
	if c.DBDriver == store.DriverPostgres && c.DB == "" {
		return fmt.Errorf("LEETLOG_DB is required for the postgres driver")
	}
	switch strings.ToLower(c.LogMode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("unknown log mode: %q", c.LogMode)
	}
	if c.CacheTTL < 0 || c.FetchTimeout < 0 || c.SweepInterval < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.User == "" {
		return fmt.Errorf("user must not be empty")
	}
	return nil
}

// Fetcher returns the metadata fetcher settings.
func (c Config) Fetcher() leetcode.Config {
	fc := leetcode.DefaultConfig()
	fc.Endpoint = c.Endpoint
	fc.Timeout = c.FetchTimeout
	fc.CacheTTL = c.CacheTTL
	return fc
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
