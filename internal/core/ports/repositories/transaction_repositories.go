package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transactions.
// Returned transactions carry their line items with VATs attached, plus
// assigned and cleared amounts computed from live assignments.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, entityID, transactionID string) (*domain.Transaction, error)

	// FindTransactionForUpdate loads and row-locks a transaction inside tx.
	FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, entityID, transactionID string) (*domain.Transaction, error)

	FindLineItemByID(ctx context.Context, transactionID, lineItemID string) (*domain.LineItem, error)
}

// TransactionWriter defines write operations for transactions and line items
type TransactionWriter interface {
	// SaveTransaction persists the transaction together with its line items.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// SaveLineItem and UpdateLineItem write inside tx, or autocommit when tx is nil.
	SaveLineItem(ctx context.Context, tx pgx.Tx, lineItem domain.LineItem) error
	UpdateLineItem(ctx context.Context, tx pgx.Tx, lineItem domain.LineItem) error

	// MarkPosted records the posted amount and snapshot exchange rate inside tx.
	MarkPosted(ctx context.Context, tx pgx.Tx, transactionID string, amount, exchangeRate decimal.Decimal, userID string, at time.Time) error

	// DeleteTransaction soft-deletes a transaction inside tx.
	DeleteTransaction(ctx context.Context, tx pgx.Tx, entityID, transactionID string, at time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
