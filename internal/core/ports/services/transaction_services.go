package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// TransactionReaderSvc defines read operations on transactions
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string) (*domain.Transaction, error)
}

// TransactionWriterSvc defines transaction authoring operations
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, lctx domain.LedgerContext, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	AddLineItem(ctx context.Context, lctx domain.LedgerContext, transactionID string, req dto.LineItemRequest) (*domain.LineItem, error)

	// UpdateLineItem fails with PostedTransaction once the transaction has ledger entries.
	UpdateLineItem(ctx context.Context, lctx domain.LedgerContext, transactionID, lineItemID string, req dto.LineItemRequest) (*domain.LineItem, error)

	// DeleteTransaction fails with PostedTransaction once the transaction has ledger entries.
	DeleteTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string) error
}

// LedgerPosterSvc expands transactions into sealed ledger entries
type LedgerPosterSvc interface {
	// PostTransaction writes the transaction's mirrored entry pairs atomically.
	// Re-posting supersedes the previous entries and writes them afresh.
	PostTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string, req dto.PostTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	LedgerPosterSvc
}
