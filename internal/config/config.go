// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/stepcoach/internal/store"
)

// Environment variables read by Load.
const (
	EnvDB       = "STEPCOACH_DB"
	EnvLog      = "STEPCOACH_LOG"
	EnvLogLevel = "STEPCOACH_LOG_LEVEL"
)

// Config holds all application configuration.
type Config struct {
	DBPath   string
	LogPath  string
	LogLevel string
}

// Load reads .env files (if any) and the environment. Directories for the
// database and log files are created as needed.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	logPath := os.Getenv(EnvLog)
	if logPath == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		logPath = filepath.Join(dir, "stepcoach.log")
	}
	if err := store.EnsureDir(logPath); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := &Config{
		DBPath:   dbPath,
		LogPath:  logPath,
		LogLevel: strings.ToLower(getEnv(EnvLogLevel, "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%s cannot be empty", EnvDB)
	}
	if c.LogPath == "" {
		return fmt.Errorf("%s cannot be empty", EnvLog)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s must be one of debug, info, warn, error; got %q", EnvLogLevel, c.LogLevel)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
