package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/bookkeeping_core/internal/platform/config"
	"github.com/SscSPs/bookkeeping_core/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	cmd.AddCommand(newMigrateStepCommand("up", "Apply all pending migrations", database.MigrateUp))
	cmd.AddCommand(newMigrateStepCommand("down", "Roll back the most recent migration", database.MigrateDown))

	return cmd
}

func newMigrateStepCommand(use, short string, direction database.MigrationDirection) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.StorageDriver != config.StoragePostgres {
				return fmt.Errorf("migrations require STORAGE_DRIVER=%s", config.StoragePostgres)
			}
			return database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, direction, newLogger())
		},
	}
}
