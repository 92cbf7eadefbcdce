package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// BalanceRepositoryFacade defines persistence for opening balances
type BalanceRepositoryFacade interface {
	SaveBalance(ctx context.Context, balance domain.Balance) error

	// FindBalancesByAccountYear lists the opening balances of an account for a reporting year.
	FindBalancesByAccountYear(ctx context.Context, accountID string, year int) ([]domain.Balance, error)
}
