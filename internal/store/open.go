package store

import (
	"context"
	"fmt"

	"github.com/agenthands/carelens/internal/config"
	"github.com/agenthands/carelens/internal/driver"
	"go.uber.org/zap"
)

// Open builds the backend named by cfg.Storage.Backend. It accepts exactly
// the names config.Validate does.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Backend {
	case "memory":
		logger.Info("Using in-memory store")
		return NewMemoryStore(), nil

	case "sqlite":
		s, err := NewSQLStore(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Using SQLite store", zap.String("path", cfg.Storage.SQLitePath))
		return s, nil

	case "memgraph":
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			return nil, err
		}
		if err := d.BuildIndices(ctx); err != nil {
			d.Close(ctx)
			return nil, fmt.Errorf("failed to build indices: %w", err)
		}
		return NewGraphStore(d), nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Storage.Backend)
}
