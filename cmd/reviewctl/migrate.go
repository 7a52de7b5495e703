package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bagdasarian/openreview-store/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies or rolls back the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Applies all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.RunMigrations(cmd.Context(), database); err != nil {
			return err
		}
		fmt.Println("migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rolls back every migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.RollbackMigrations(cmd.Context(), database); err != nil {
			return err
		}
		fmt.Println("migrations rolled back")
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
