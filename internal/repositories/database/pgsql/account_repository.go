package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, entity_id, code, name, account_type, currency_code, category_id, description,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.EntityID,
		&a.Code,
		&a.Name,
		&a.AccountType,
		&a.CurrencyCode,
		&a.CategoryID, // Nullable
		&a.Description,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.EntityID,
		account.Code,
		account.Name,
		account.AccountType,
		account.CurrencyCode,
		account.CategoryID,
		account.Description,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
		}
		return apperrors.NewAppError(500, "failed to save account "+account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a live account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE entity_id = $1 AND account_id = $2 AND deleted_at IS NULL;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, entityID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account", accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	return acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE entity_id = $1 AND account_id = ANY($2) AND deleted_at IS NULL;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accountsMap[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves a page of live accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, entityID string, limit, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE entity_id = $1 AND deleted_at IS NULL
		ORDER BY code ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// CountAccountsByType includes deleted accounts so codes are never reused.
func (r *PgxAccountRepository) CountAccountsByType(ctx context.Context, entityID string, accountType domain.AccountType) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE entity_id = $1 AND account_type = $2;`,
		entityID, accountType,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count accounts", err)
	}
	return count, nil
}

func (r *PgxAccountRepository) HasLedgerEntries(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ledgers WHERE post_account = $1);`,
		accountID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check ledger entries for account "+accountID, err)
	}
	return exists, nil
}

// UpdateAccount updates the mutable fields of a live account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, account_type = $4, category_id = $5, description = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE entity_id = $1 AND account_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		account.EntityID,
		account.AccountID,
		account.Name,
		account.AccountType,
		account.CategoryID,
		account.Description,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account", account.AccountID)
	}
	return nil
}

// DeleteAccount soft-deletes an account.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, tx pgx.Tx, entityID, accountID string, deletedAt time.Time) error {
	cmdTag, err := r.db(tx).Exec(ctx,
		`UPDATE accounts SET deleted_at = $3 WHERE entity_id = $1 AND account_id = $2 AND deleted_at IS NULL;`,
		entityID, accountID, deletedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account", accountID)
	}
	return nil
}

func (r *PgxAccountRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, entity_id, name, category_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.EntityID,
		category.Name,
		category.CategoryType,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, category.CategoryID)
		}
		return apperrors.NewAppError(500, "failed to save category "+category.CategoryID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindCategoryByID(ctx context.Context, entityID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, entity_id, name, category_type, created_at, created_by, last_updated_at, last_updated_by
		FROM categories
		WHERE entity_id = $1 AND category_id = $2;
	`
	var c domain.Category
	err := r.Pool.QueryRow(ctx, query, entityID, categoryID).Scan(
		&c.CategoryID,
		&c.EntityID,
		&c.Name,
		&c.CategoryType,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("category", categoryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find category "+categoryID, err)
	}
	return &c, nil
}
