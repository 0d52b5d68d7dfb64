// Package config loads application configuration from the environment, with
// optional .env file support.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/avnerell/dayweave/internal/llm"
	"github.com/avnerell/dayweave/internal/repository"
)

// Config is the application-level configuration.
type Config struct {
	// DBPath is the SQLite database file. Default ~/.dayweave/dayweave.db.
	DBPath string

	// UserID is the default acting user.
	UserID string

	// Timezone overrides all profile timezones when set (IANA name).
	Timezone string

	// MatchPolicy selects how title-based updates treat duplicate titles.
	MatchPolicy repository.MatchPolicy

	// StrictOverlapCheck rejects overlapping movable entries after parsing.
	StrictOverlapCheck bool

	// LogUseCases writes service telemetry to stderr.
	LogUseCases bool

	LLM llm.Config
}

// Load reads configuration from a .env file (when present) and the
// environment. Unset values fall back to defaults.
func Load() (Config, error) {
	// Missing .env is fine; only load errors for an existing file matter.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		UserID:             "default",
		MatchPolicy:        repository.MatchFirst,
		StrictOverlapCheck: true,
		LLM:                llm.LoadConfig(),
	}

	if v := os.Getenv("DAYWEAVE_DB"); v != "" {
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = filepath.Join(home, ".dayweave", "dayweave.db")
	}

	if v := os.Getenv("DAYWEAVE_USER"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("DAYWEAVE_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("DAYWEAVE_MATCH_POLICY"); v == string(repository.MatchAll) {
		cfg.MatchPolicy = repository.MatchAll
	}
	if v := os.Getenv("DAYWEAVE_STRICT_OVERLAP"); v == "false" || v == "0" {
		cfg.StrictOverlapCheck = false
	}
	if v := os.Getenv("DAYWEAVE_LOG_USE_CASES"); v == "true" || v == "1" {
		cfg.LogUseCases = true
	}

	return cfg, nil
}
