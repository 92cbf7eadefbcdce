package main

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/spf13/cobra"
)

var flagSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		applied, err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		if err != nil {
			return err
		}
		if applied {
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "no change")
		}
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSteps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		return database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsPath, flagSteps, logger)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := database.MigrationVersion(cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%t)\n", version, dirty)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&flagSteps, "steps", 1, "Number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}
