package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AccountReaderSvc defines read operations on accounts
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, lctx domain.LedgerContext, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, lctx domain.LedgerContext, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations on accounts and categories
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, lctx domain.LedgerContext, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, lctx domain.LedgerContext, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount fails with HangingTransactions while the closing balance is non-zero.
	DeleteAccount(ctx context.Context, lctx domain.LedgerContext, accountID string) error

	CreateCategory(ctx context.Context, lctx domain.LedgerContext, req dto.CreateCategoryRequest) (*domain.Category, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
