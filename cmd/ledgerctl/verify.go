package main

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/spf13/cobra"
)

var flagJSON bool

var verifyCmd = &cobra.Command{
	Use:   "verify-chain <entity-id>",
	Short: "Recompute an entity's ledger hash chain",
	Long:  "Rescans every ledger entry of the entity in sequence order. Exits non-zero when the chain is broken.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
		if err != nil {
			return err
		}
		defer database.ClosePgxPool(pool)

		svc, err := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool))
		if err != nil {
			return err
		}
		result, err := svc.Ledger.VerifyChain(ctx, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if flagJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		} else if result.Valid {
			fmt.Fprintf(out, "chain intact: %d entries verified\n", result.EntriesVerified)
		} else {
			fmt.Fprintf(out, "chain broken at sequence %d (ledger %s): %s\n  stored   %s\n  expected %s\n",
				result.Break.Sequence, result.Break.LedgerID, result.Break.Reason,
				result.Break.StoredHash, result.Break.ExpectedHash)
		}
		if !result.Valid {
			return apperrors.ErrChainBroken
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the verification result as JSON")
}
