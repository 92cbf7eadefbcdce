package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for opening balances.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// balanceSelect reads opening balances with the amount cleared by live assignments.
const balanceSelect = `
	SELECT b.balance_id, b.entity_id, b.account_id, b.currency_code, b.year, b.transaction_type,
	       b.transaction_no, b.transaction_date, b.reference, b.balance_type, b.amount, b.exchange_rate,
	       b.created_at, b.created_by, b.last_updated_at, b.last_updated_by,
	       COALESCE((SELECT SUM(a.amount) FROM assignments a
	                 WHERE a.cleared_type = 'BALANCE' AND a.cleared_id = b.balance_id
	                   AND a.deleted_at IS NULL), 0) AS cleared_amount
	FROM balances b`

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var b domain.Balance
	err := row.Scan(
		&b.BalanceID,
		&b.EntityID,
		&b.AccountID,
		&b.CurrencyCode,
		&b.Year,
		&b.TransactionType,
		&b.TransactionNo,
		&b.TransactionDate,
		&b.Reference,
		&b.BalanceType,
		&b.Amount,
		&b.ExchangeRate,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
		&b.ClearedAmount,
	)
	if err != nil {
		return nil, err
	}
	b.TransactionDate = b.TransactionDate.UTC()
	return &b, nil
}

func (r *PgxBalanceRepository) SaveBalance(ctx context.Context, balance domain.Balance) error {
	query := `
		INSERT INTO balances (balance_id, entity_id, account_id, currency_code, year, transaction_type,
		                      transaction_no, transaction_date, reference, balance_type, amount, exchange_rate,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		balance.BalanceID,
		balance.EntityID,
		balance.AccountID,
		balance.CurrencyCode,
		balance.Year,
		balance.TransactionType,
		balance.TransactionNo,
		balance.TransactionDate,
		balance.Reference,
		balance.BalanceType,
		balance.Amount,
		balance.ExchangeRate,
		balance.CreatedAt,
		balance.CreatedBy,
		balance.LastUpdatedAt,
		balance.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: balance with ID %s already exists", apperrors.ErrDuplicate, balance.BalanceID)
		}
		return apperrors.NewAppError(500, "failed to save opening balance", err)
	}
	return nil
}

func (r *PgxBalanceRepository) FindBalancesByAccountYear(ctx context.Context, accountID string, year int) ([]domain.Balance, error) {
	rows, err := r.Pool.Query(ctx,
		balanceSelect+` WHERE b.account_id = $1 AND b.year = $2 ORDER BY b.created_at ASC;`,
		accountID, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query opening balances", err)
	}
	defer rows.Close()

	balances := make([]domain.Balance, 0)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan opening balance", err)
		}
		balances = append(balances, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating opening balances", err)
	}
	return balances, nil
}
