package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAssignmentRepository struct {
	BaseRepository
}

// newPgxAssignmentRepository creates a new repository for assignments and clearables.
func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

const assignmentColumns = `assignment_id, entity_id, transaction_id, cleared_type, cleared_id, amount,
	forex_account_id, assignment_date, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// clearableTransactionSelect reads a transaction as a clearable: its
// aggregates, the assignables that settled it, and whether it has assigned.
const clearableTransactionSelect = `
	SELECT t.transaction_id, t.entity_id, t.transaction_no, t.transaction_type, t.transaction_date,
	       t.reference, t.narration, t.account_id, t.currency_code, t.exchange_rate,
	       t.is_credited, t.is_posted, t.amount,
	       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
	       COALESCE((SELECT SUM(a.amount) FROM assignments a
	                 WHERE a.transaction_id = t.transaction_id AND a.deleted_at IS NULL), 0) AS assigned_amount,
	       COALESCE((SELECT SUM(a.amount) FROM assignments a
	                 WHERE a.cleared_type = 'TRANSACTION' AND a.cleared_id = t.transaction_id
	                   AND a.deleted_at IS NULL), 0) AS cleared_amount,
	       COALESCE((SELECT array_agg(DISTINCT a.transaction_id)::text[] FROM assignments a
	                 WHERE a.cleared_type = 'TRANSACTION' AND a.cleared_id = t.transaction_id
	                   AND a.deleted_at IS NULL), '{}') AS cleared_by,
	       EXISTS (SELECT 1 FROM assignments a
	               WHERE a.transaction_id = t.transaction_id AND a.deleted_at IS NULL) AS has_assigned
	FROM transactions t`

const clearableBalanceSelect = `
	SELECT b.balance_id, b.entity_id, b.account_id, b.currency_code, b.year, b.transaction_type,
	       b.transaction_no, b.transaction_date, b.reference, b.balance_type, b.amount, b.exchange_rate,
	       b.created_at, b.created_by, b.last_updated_at, b.last_updated_by,
	       COALESCE((SELECT SUM(a.amount) FROM assignments a
	                 WHERE a.cleared_type = 'BALANCE' AND a.cleared_id = b.balance_id
	                   AND a.deleted_at IS NULL), 0) AS cleared_amount,
	       COALESCE((SELECT array_agg(DISTINCT a.transaction_id)::text[] FROM assignments a
	                 WHERE a.cleared_type = 'BALANCE' AND a.cleared_id = b.balance_id
	                   AND a.deleted_at IS NULL), '{}') AS cleared_by
	FROM balances b`

func scanClearableTransaction(row pgx.Row) (*domain.Clearable, error) {
	var m models.Transaction
	var clearedBy []string
	var hasAssigned bool
	err := row.Scan(
		&m.TransactionID,
		&m.EntityID,
		&m.TransactionNo,
		&m.TransactionType,
		&m.TransactionDate,
		&m.Reference,
		&m.Narration,
		&m.AccountID,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.IsCredited,
		&m.IsPosted,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.AssignedAmount,
		&m.ClearedAmount,
		&clearedBy,
		&hasAssigned,
	)
	if err != nil {
		return nil, err
	}
	c := domain.ClearableFromTransaction(mapping.ToDomainTransaction(m), clearedBy, hasAssigned)
	return &c, nil
}

func scanClearableBalance(row pgx.Row) (*domain.Clearable, error) {
	var b domain.Balance
	var clearedBy []string
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
		&clearedBy,
	)
	if err != nil {
		return nil, err
	}
	c := domain.ClearableFromBalance(b, clearedBy)
	return &c, nil
}

func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, entityID, assignmentID string) (*domain.Assignment, error) {
	var a domain.Assignment
	err := r.Pool.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE entity_id = $1 AND assignment_id = $2 AND deleted_at IS NULL;`,
		entityID, assignmentID,
	).Scan(
		&a.AssignmentID,
		&a.EntityID,
		&a.TransactionID,
		&a.Cleared.Kind,
		&a.Cleared.ID,
		&a.Amount,
		&a.ForexAccountID,
		&a.AssignmentDate,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
		&a.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("assignment", assignmentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find assignment "+assignmentID, err)
	}
	return &a, nil
}

func (r *PgxAssignmentRepository) FindClearableForUpdate(ctx context.Context, tx pgx.Tx, entityID string, ref domain.ClearedRef) (*domain.Clearable, error) {
	var (
		c   *domain.Clearable
		err error
	)
	switch ref.Kind {
	case domain.ClearedTransaction:
		c, err = scanClearableTransaction(tx.QueryRow(ctx, clearableTransactionSelect+`
			WHERE t.entity_id = $1 AND t.transaction_id = $2 AND t.deleted_at IS NULL
			FOR UPDATE OF t;`, entityID, ref.ID))
	case domain.ClearedBalance:
		c, err = scanClearableBalance(tx.QueryRow(ctx, clearableBalanceSelect+`
			WHERE b.entity_id = $1 AND b.balance_id = $2
			FOR UPDATE OF b;`, entityID, ref.ID))
	default:
		return nil, apperrors.NewValidationError("unknown cleared type %q", ref.Kind)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(string(ref.Kind), ref.ID)
		}
		return nil, apperrors.NewAppError(500, "failed to load clearable "+ref.ID, err)
	}
	return c, nil
}

// ListOutstandingClearables locks transactions first, then balances, both in
// creation order so concurrent runs acquire row locks in the same sequence.
func (r *PgxAssignmentRepository) ListOutstandingClearables(ctx context.Context, tx pgx.Tx, entityID, accountID, currencyCode string, credited bool) ([]domain.Clearable, error) {
	clearables := make([]domain.Clearable, 0)

	rows, err := tx.Query(ctx, clearableTransactionSelect+`
		WHERE t.entity_id = $1 AND t.account_id = $2 AND t.currency_code = $3 AND t.is_credited = $4
		  AND t.is_posted AND t.deleted_at IS NULL
		  AND t.transaction_type = ANY($5)
		ORDER BY t.created_at ASC, t.transaction_id ASC
		FOR UPDATE OF t;`,
		entityID, accountID, currencyCode, credited, clearableTypeCodes())
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query outstanding transactions", err)
	}
	for rows.Next() {
		c, err := scanClearableTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan clearable transaction", err)
		}
		if c.UnclearedAmount().IsPositive() {
			clearables = append(clearables, *c)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating outstanding transactions", err)
	}

	balanceType := domain.Debit
	if credited {
		balanceType = domain.Credit
	}
	rows, err = tx.Query(ctx, clearableBalanceSelect+`
		WHERE b.entity_id = $1 AND b.account_id = $2 AND b.currency_code = $3 AND b.balance_type = $4
		ORDER BY b.created_at ASC, b.balance_id ASC
		FOR UPDATE OF b;`,
		entityID, accountID, currencyCode, balanceType)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query outstanding balances", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanClearableBalance(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan clearable balance", err)
		}
		if c.UnclearedAmount().IsPositive() {
			clearables = append(clearables, *c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating outstanding balances", err)
	}
	return clearables, nil
}

func clearableTypeCodes() []string {
	codes := make([]string, len(domain.Clearables))
	for i, t := range domain.Clearables {
		codes[i] = string(t)
	}
	return codes
}

func (r *PgxAssignmentRepository) InsertAssignments(ctx context.Context, tx pgx.Tx, assignments []domain.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	query := `
		INSERT INTO assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, a := range assignments {
		batch.Queue(query,
			a.AssignmentID,
			a.EntityID,
			a.TransactionID,
			a.Cleared.Kind,
			a.Cleared.ID,
			a.Amount,
			a.ForexAccountID,
			a.AssignmentDate,
			a.CreatedAt,
			a.CreatedBy,
			a.LastUpdatedAt,
			a.LastUpdatedBy,
			a.DeletedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, a := range assignments {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert assignment "+a.AssignmentID, err)
		}
	}
	return nil
}

func (r *PgxAssignmentRepository) SoftDeleteAssignment(ctx context.Context, tx pgx.Tx, entityID, assignmentID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE assignments SET deleted_at = $3 WHERE entity_id = $1 AND assignment_id = $2 AND deleted_at IS NULL;`,
		entityID, assignmentID, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete assignment "+assignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("assignment", assignmentID)
	}
	return nil
}
