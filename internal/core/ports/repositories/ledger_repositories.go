package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerChainWriter appends sealed entries to an entity's chain
type LedgerChainWriter interface {
	// LockChain serialises writers on the entity's chain until tx ends.
	LockChain(ctx context.Context, tx pgx.Tx, entityID string) error

	// FindChainTail returns the entry with the highest sequence, or nil for an empty chain.
	FindChainTail(ctx context.Context, tx pgx.Tx, entityID string) (*domain.LedgerEntry, error)

	// SupersedeTransactionEntries marks the live entries of a transaction as replaced.
	SupersedeTransactionEntries(ctx context.Context, tx pgx.Tx, transactionID string, at time.Time) (int64, error)

	InsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error
}

// LedgerReader defines read operations over ledger entries.
// Aggregations consider live (not superseded) entries only.
type LedgerReader interface {
	// CountTransactionEntries counts every entry ever written for a transaction.
	CountTransactionEntries(ctx context.Context, tx pgx.Tx, transactionID string) (int, error)

	ListTransactionEntries(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// SumBalance is debits minus credits posted to account with start <= posting_date <= end.
	SumBalance(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error)

	// ListEntriesByAccount pages through live entries posted to an account, newest first.
	ListEntriesByAccount(ctx context.Context, entityID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListChainPage returns up to limit entries with sequence greater than afterSequence, ascending.
	ListChainPage(ctx context.Context, entityID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerChainWriter
	LedgerReader
}
