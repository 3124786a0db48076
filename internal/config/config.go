// Package config assembles runtime configuration from an optional .env
// file, ALFANUMRIK_* environment variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/store"
)

// Config is everything the composition root needs.
type Config struct {
	DBPath      string
	LogMode     string
	Language    string
	RedisURL    string
	SessionPath string
	LLM         llm.Config
}

// Overrides carries flag values; empty fields leave the loaded value alone.
type Overrides struct {
	DBPath   string
	LogMode  string
	Language string
}

// Load reads envFile (".env" when empty; a missing file is not an error),
// then the environment, then applies o.
func Load(envFile string, o Overrides) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{
		LogMode:  getEnv("ALFANUMRIK_LOG", "quiet"),
		Language: getEnv("ALFANUMRIK_LANGUAGE", "English"),
		RedisURL: os.Getenv("ALFANUMRIK_REDIS_URL"),
		LLM:      llm.ConfigFromEnv(),
	}

	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
		cfg.DBPath = p
	}
	if o.LogMode != "" {
		cfg.LogMode = o.LogMode
	}
	if o.Language != "" {
		cfg.Language = o.Language
	}

	sp, err := sessionPath()
	if err != nil {
		return nil, err
	}
	cfg.SessionPath = sp
	return cfg, nil
}

// sessionPath resolves ALFANUMRIK_SESSION, then $XDG_STATE_HOME, then
// ~/.local/state.
func sessionPath() (string, error) {
	if p := os.Getenv("ALFANUMRIK_SESSION"); p != "" {
		return p, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "alfanumrik", "session"), nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
