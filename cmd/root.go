package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "hackfest",
		Short:   "Hackathon registration server",
		Long:    `Accepts hackathon team registrations, stores them in PostgreSQL, sends confirmation emails and serves the admin dashboard API.`,
		Version: version,
		// без подкоманды запускаем сервер
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.Flags().Bool("migrate", true, "apply pending migrations before serving")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newHashPasswordCmd())
	return root
}

// newLogger настраивает JSON логгер и делает его логгером по умолчанию.
func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
