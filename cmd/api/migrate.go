package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/internal/bootstrap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the projects schema and exit",
	Long: `Create the projects table and its indexes for the configured driver.
Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db, err := bootstrap.OpenDB(cmd.Context(), bootstrap.DBOptions{Config: &cfg.Database})
		if err != nil {
			log.Error("migration failed", zap.Error(err))
			return err
		}
		defer db.Close()

		log.Info("schema ready", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
