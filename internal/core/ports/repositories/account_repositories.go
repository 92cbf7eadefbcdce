package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a live account of an entity.
	FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves live accounts keyed by id. Missing ids are absent from the map.
	FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts lists the live accounts of an entity ordered by code.
	ListAccounts(ctx context.Context, entityID string, limit, offset int) ([]domain.Account, error)

	// CountAccountsByType counts accounts of a type, deleted ones included, for code assignment.
	CountAccountsByType(ctx context.Context, entityID string, accountType domain.AccountType) (int, error)

	// HasLedgerEntries reports whether any ledger entry posts to the account.
	HasLedgerEntries(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeleteAccount soft-deletes inside tx, or autocommits when tx is nil.
	DeleteAccount(ctx context.Context, tx pgx.Tx, entityID, accountID string, deletedAt time.Time) error
}

// CategoryRepository defines persistence for account categories
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, entityID, categoryID string) (*domain.Category, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	CategoryRepository
}
