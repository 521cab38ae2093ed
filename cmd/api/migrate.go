package main

import (
	"e-shopping/internal/config"
	"e-shopping/internal/database"
	"e-shopping/internal/logger"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres slot table migrations",
		Long: `Apply the embedded goose migrations to the database configured with DB_*.
Only needed with STORAGE_DRIVER=postgres; serve also migrates on start.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			// .env is loaded by now, so SERVER_ENV is visible
			log := logger.NewWithDefaults()
			defer log.Sync()

			db, err := database.New(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if status {
				return database.LogMigrationStatus(db.DB(), log)
			}
			return database.RunMigrations(db.DB(), log)
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "print migration status instead of migrating")
	return cmd
}
