package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dosada05/hackfest/config"
	"github.com/Dosada05/hackfest/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
			if err != nil {
				return err
			}
			defer dbConn.Close()

			version, err := db.Migrate(cmd.Context(), dbConn)
			if err != nil {
				return err
			}
			logger.Info("migrations applied", slog.Uint64("version", uint64(version)))
			return nil
		},
	}
}
