package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// BalanceCalculatorSvc aggregates sealed ledger entries. All amounts are in reporting currency.
type BalanceCalculatorSvc interface {
	Balance(ctx context.Context, lctx domain.LedgerContext, accountID string, start, end time.Time) (decimal.Decimal, error)
	Contribution(ctx context.Context, lctx domain.LedgerContext, accountID, transactionID string) (decimal.Decimal, error)
	OpeningBalance(ctx context.Context, lctx domain.LedgerContext, accountID string, year int) (decimal.Decimal, error)
	ClosingBalance(ctx context.Context, lctx domain.LedgerContext, accountID string, endDate time.Time) (accounting.AccountStatement, error)
}

// BalanceSvcFacade combines balance calculation with opening balance records and account statements
type BalanceSvcFacade interface {
	BalanceCalculatorSvc

	// CreateOpeningBalance fails with InvalidBalanceDate unless the date precedes the reporting year.
	CreateOpeningBalance(ctx context.Context, lctx domain.LedgerContext, req dto.CreateBalanceRequest) (*domain.Balance, error)

	ListAccountEntries(ctx context.Context, lctx domain.LedgerContext, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
