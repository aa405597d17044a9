package backend

import (
	"context"
	"fmt"

	"bilancio/internal/log"
	"bilancio/internal/persist/file"
	"bilancio/internal/persist/memory"
	"bilancio/internal/persist/sqlite"
)

// Factory builds gateways from configuration.
type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent(log.ComponentBackend)}
}

// CreateGateway builds the gateway named by the config.
func (f *Factory) CreateGateway(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case Memory:
		f.logger.InfoContext(ctx, "initialized memory backend")
		return &Result{Gateway: memory.New()}, nil

	case File:
		gw, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize file backend: %w", err)
		}
		f.logger.InfoContext(ctx, "initialized file backend",
			log.FieldBackendType, cfg.Type.String(),
			log.FieldPath, cfg.DataDir)
		return &Result{Gateway: gw}, nil

	case SQLite:
		gw, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		f.logger.InfoContext(ctx, "initialized sqlite backend",
			log.FieldBackendType, cfg.Type.String(),
			log.FieldPath, cfg.SQLiteDBPath)
		return &Result{Gateway: gw, Cleanup: gw.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
