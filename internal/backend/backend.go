// Package backend selects and builds the persistence gateway from
// configuration.
package backend

import (
	"fmt"

	"bilancio/internal/config"
	"bilancio/internal/persist"
)

const (
	Memory Type = "memory"
	File   Type = "file"
	SQLite Type = "sqlite"
)

type (
	// Type names a gateway implementation.
	Type string

	// Config holds what is needed to build a gateway.
	Config struct {
		Type Type

		// File backend
		DataDir string

		// SQLite backend
		SQLiteDBPath string
	}

	// CleanupFunc releases a gateway's resources.
	CleanupFunc func() error

	// Result carries the gateway and an optional cleanup function.
	Result struct {
		Gateway persist.Gateway
		Cleanup CleanupFunc
	}
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case Memory, File, SQLite:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{Memory, File, SQLite}
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:         t,
		DataDir:      appConfig.DataDir,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Validate checks the configuration for the selected type.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Type {
	case File:
		if c.DataDir == "" {
			return fmt.Errorf("data directory is required for the file backend")
		}
	case SQLite:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("database path is required for the sqlite backend")
		}
	case Memory:
		// Nothing to validate
	}
	return nil
}
