package main

import (
	"os"

	"github.com/spf13/cobra"

	"apollo/internal/config"
	"apollo/internal/infrastructure/database"
	"apollo/internal/infrastructure/gormstore"
	"apollo/internal/infrastructure/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(os.Stderr, cfg.LogLevel)

			if cfg.DatabaseDriver == config.DriverSQLite {
				// the sqlite schema is created by gorm when the store opens
				db, err := gormstore.Open(cmd.Context(), cfg.SQLitePath, logging.Named(logger, "gorm"))
				if err != nil {
					return err
				}
				return gormstore.Close(db)
			}
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		},
	}
}
