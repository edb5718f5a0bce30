package commands

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_core/internal/platform/config"
	"github.com/SscSPs/bookkeeping_core/internal/repositories/database/memory"
	"github.com/SscSPs/bookkeeping_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_core/pkg/database"
)

// openStore builds the storage backend selected by the configuration. For postgres,
// pending migrations are applied when migrate is set.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (portsrepo.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("Using in-memory storage; data is lost on exit.")
		return memory.NewStore(), nil
	case config.StoragePostgres:
		if migrate {
			logger.Info("Running database migrations...")
			if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("initializing database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewStore(pool), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
