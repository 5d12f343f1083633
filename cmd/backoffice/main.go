// Package main is the entry point for the back-office API server. The
// binary exposes serve, migrate, and seed subcommands; serve is the
// long-running HTTP server, the other two are one-shot operations for
// deployment pipelines.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"backoffice/internal/config"
	"backoffice/internal/database"
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Role-gated administrative API for reference data",
	Long: `backoffice serves the administrative JSON API for stat categories,
hierarchical stat category items, languages, and translations, backed by
PostgreSQL with Valkey caching.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()
		return database.Migrate(db)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the permission matrix, admin user, and default language",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()
		return database.Seed(db)
	},
}

func init() {
	// Structured logger shared by every subcommand.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
