// Package config resolves client configuration from flags, environment
// variables, and an optional .env file, in that priority order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables.
const (
	EnvBaseURL   = "MEMCTL_BASE_URL"
	EnvTimeout   = "MEMCTL_TIMEOUT"
	EnvHistoryDB = "MEMCTL_HISTORY_DB"
)

// Defaults.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second
)

// Config is the resolved client configuration.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	HistoryPath string
}

// Load resolves the configuration. Flag values win over the environment; a
// .env file in the working directory seeds the environment without
// overriding variables already set. A nil timeoutFlag means the flag was
// not set; an explicit zero disables the client-wide deadline.
func Load(baseURLFlag string, timeoutFlag *time.Duration) (Config, error) {
	godotenv.Load()

	cfg := Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}

	if env := os.Getenv(EnvBaseURL); env != "" {
		cfg.BaseURL = env
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}

	if env := os.Getenv(EnvTimeout); env != "" {
		d, err := time.ParseDuration(env)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvTimeout, env, err)
		}
		cfg.Timeout = d
	}
	if timeoutFlag != nil {
		cfg.Timeout = *timeoutFlag
	}

	if env := os.Getenv(EnvHistoryDB); env != "" {
		cfg.HistoryPath = env
	} else {
		home, _ := os.UserHomeDir()
		cfg.HistoryPath = filepath.Join(home, ".memctl", "history.db")
	}

	return cfg, nil
}
