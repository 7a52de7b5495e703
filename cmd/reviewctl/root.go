package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bagdasarian/openreview-store/internal/config"
	"github.com/bagdasarian/openreview-store/internal/db"
	"github.com/bagdasarian/openreview-store/internal/logger"
)

var outputJSON bool

var rootCmd = &cobra.Command{
	Use:           "reviewctl",
	Short:         "reviewctl inspects and maintains the review store.",
	Long:          `An administrative CLI for the review store: schema migrations, stuck review detection and aggregate statistics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output as JSON")
}

// openDatabase loads configuration and connects without applying migrations.
func openDatabase() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	cfg.Database.MigrateOnStart = false
	database, err := db.NewPostgres(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, database, nil
}
