// Package config reads the module's configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend selection
	DataBackend string

	// File backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string

	// Logging
	LogLevel string

	// Category seed for fresh stores and new profiles; empty means the
	// built-in defaults.
	SeedCategories []string
}

// LoadEnv loads a .env file when present (errors are ignored, the file is
// optional outside local development) and then reads the environment.
func LoadEnv() *Config {
	_ = godotenv.Load()
	return Load()
}

func Load() *Config {
	return &Config{
		DataBackend:    getEnv("DATA_BACKEND", "memory"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/bilancio.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SeedCategories: getEnvList("SEED_CATEGORIES"),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.DataBackend {
	case "memory", "file", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory file sqlite]", c.DataBackend))
	}

	if c.DataBackend == "file" && c.DataDir == "" {
		errs = append(errs, "data directory cannot be empty when using the file backend")
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using the sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	for _, cat := range c.SeedCategories {
		if strings.TrimSpace(cat) == "" {
			errs = append(errs, "seed categories must not contain blank names")
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s'", s)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
