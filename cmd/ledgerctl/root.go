package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/spf13/cobra"
)

var (
	flagDatabaseURL string
	flagMigrations  string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the ledger engine database",
	Long:  "Administrative commands for the ledger engine: schema migrations, hash chain verification and API tokens.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if flagDatabaseURL != "" {
			loaded.DatabaseURL = flagDatabaseURL
		}
		if flagMigrations != "" {
			loaded.MigrationsPath = flagMigrations
		}
		cfg = loaded
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "db", "", "PostgreSQL URL (defaults to PGSQL_URL)")
	rootCmd.PersistentFlags().StringVar(&flagMigrations, "migrations", "", "Migration source URL (defaults to MIGRATIONS_PATH)")

	rootCmd.AddCommand(migrateCmd, verifyCmd, tokenCmd)
}
