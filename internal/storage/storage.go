// Package storage opens the configured domain.Store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"bytepantry/internal/adapter/repo"
	"bytepantry/internal/adapter/sqlite"
	"bytepantry/internal/domain"
	"bytepantry/internal/infra"
)

// Open connects to the database selected by cfg.DatabaseDriver and applies
// the schema. Closing the returned store releases the connection pool.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.Store, error) {
	if cfg == nil {
		return nil, errors.New("storage: config is required")
	}
	switch cfg.DatabaseDriver {
	case infra.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case infra.DriverSQLite:
		return openSQLite(cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.DatabaseDriver)
	}
}

func openPostgres(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.Store, error) {
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := repo.ApplySchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	runner := infra.NewSQLRunner(pool, logger.With().Str("component", "sql").Logger())
	logger.Info().Str("driver", infra.DriverPostgres).Msg("storage ready")
	return repo.NewStore(runner, pool.Close), nil
}

// openSQLite creates the parent directory of path when it is missing.
func openSQLite(path string, logger zerolog.Logger) (domain.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage: sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: ensure sqlite dir: %w", err)
		}
	}
	store, err := sqlite.Open(path, logger.With().Str("component", "sqlite").Logger())
	if err != nil {
		return nil, err
	}
	logger.Info().Str("driver", infra.DriverSQLite).Str("path", path).Msg("storage ready")
	return store, nil
}
