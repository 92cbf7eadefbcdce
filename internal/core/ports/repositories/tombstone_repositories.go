package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TombstoneWriter records soft deletes. tx may be nil to write outside a transaction.
type TombstoneWriter interface {
	InsertTombstone(ctx context.Context, tx pgx.Tx, tombstone domain.Tombstone) error
}
