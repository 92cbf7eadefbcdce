package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	vatRepo *PgxVatRepository
}

// newPgxTransactionRepository creates a new repository for transactions and their line items.
func newPgxTransactionRepository(pool *pgxpool.Pool, vatRepo *PgxVatRepository) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		vatRepo:        vatRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// transactionSelect reads a live transaction with its settlement aggregates
// computed from live assignments.
const transactionSelect = `
	SELECT t.transaction_id, t.entity_id, t.transaction_no, t.transaction_type, t.transaction_date,
	       t.reference, t.narration, t.account_id, t.currency_code, t.exchange_rate,
	       t.is_credited, t.is_posted, t.amount,
	       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
	       COALESCE((SELECT SUM(a.amount) FROM assignments a
	                 WHERE a.transaction_id = t.transaction_id AND a.deleted_at IS NULL), 0) AS assigned_amount,
	       COALESCE((SELECT SUM(a.amount) FROM assignments a
	                 WHERE a.cleared_type = 'TRANSACTION' AND a.cleared_id = t.transaction_id
	                   AND a.deleted_at IS NULL), 0) AS cleared_amount
	FROM transactions t
	WHERE t.entity_id = $1 AND t.transaction_id = $2 AND t.deleted_at IS NULL`

const lineItemColumns = `line_item_id, transaction_id, account_id, narration, quantity, amount,
	vat_id, vat_inclusive, vat_account_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
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
	)
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func scanLineItem(row pgx.Row) (*domain.LineItem, error) {
	var m models.LineItem
	err := row.Scan(
		&m.LineItemID,
		&m.TransactionID,
		&m.AccountID,
		&m.Narration,
		&m.Quantity,
		&m.Amount,
		&m.VatID,
		&m.VatInclusive,
		&m.VatAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	li := mapping.ToDomainLineItem(m)
	return &li, nil
}

func (r *PgxTransactionRepository) findTransaction(ctx context.Context, q querier, query, entityID, transactionID string) (*domain.Transaction, error) {
	txn, err := scanTransaction(q.QueryRow(ctx, query, entityID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction", transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	lineItems, err := r.listLineItems(ctx, q, transactionID)
	if err != nil {
		return nil, err
	}
	txn.LineItems = lineItems
	return txn, nil
}

// listLineItems loads the lines of a transaction in creation order with their VATs attached.
func (r *PgxTransactionRepository) listLineItems(ctx context.Context, q querier, transactionID string) ([]domain.LineItem, error) {
	rows, err := q.Query(ctx,
		`SELECT `+lineItemColumns+` FROM line_items WHERE transaction_id = $1 ORDER BY created_at ASC, line_item_id ASC;`,
		transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items", err)
	}
	defer rows.Close()

	var lineItems []domain.LineItem
	var vatIDs []string
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item", err)
		}
		if li.VatID != nil {
			vatIDs = append(vatIDs, *li.VatID)
		}
		lineItems = append(lineItems, *li)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line items", err)
	}
	rows.Close()

	vats, err := r.vatRepo.findVatsByIDs(ctx, q, vatIDs)
	if err != nil {
		return nil, err
	}
	for i := range lineItems {
		if lineItems[i].VatID == nil {
			continue
		}
		if vat, ok := vats[*lineItems[i].VatID]; ok {
			lineItems[i].Vat = &vat
		}
	}
	return lineItems, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, entityID, transactionID string) (*domain.Transaction, error) {
	return r.findTransaction(ctx, r.Pool, transactionSelect+`;`, entityID, transactionID)
}

func (r *PgxTransactionRepository) FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, entityID, transactionID string) (*domain.Transaction, error) {
	return r.findTransaction(ctx, tx, transactionSelect+` FOR UPDATE OF t;`, entityID, transactionID)
}

func (r *PgxTransactionRepository) FindLineItemByID(ctx context.Context, transactionID, lineItemID string) (*domain.LineItem, error) {
	li, err := scanLineItem(r.Pool.QueryRow(ctx,
		`SELECT `+lineItemColumns+` FROM line_items WHERE transaction_id = $1 AND line_item_id = $2;`,
		transactionID, lineItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("line item", lineItemID)
		}
		return nil, apperrors.NewAppError(500, "failed to find line item "+lineItemID, err)
	}
	return li, nil
}

const insertLineItemQuery = `
	INSERT INTO line_items (` + lineItemColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

func lineItemArgs(li domain.LineItem) []any {
	m := mapping.ToModelLineItem(li)
	return []any{
		m.LineItemID,
		m.TransactionID,
		m.AccountID,
		m.Narration,
		m.Quantity,
		m.Amount,
		m.VatID,
		m.VatInclusive,
		m.VatAccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveTransaction inserts the header and all line items in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	m := mapping.ToModelTransaction(txn)
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (
			transaction_id, entity_id, transaction_no, transaction_type, transaction_date,
			reference, narration, account_id, currency_code, exchange_rate,
			is_credited, is_posted, amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`,
		m.TransactionID,
		m.EntityID,
		m.TransactionNo,
		m.TransactionType,
		m.TransactionDate,
		m.Reference,
		m.Narration,
		m.AccountID,
		m.CurrencyCode,
		m.ExchangeRate,
		m.IsCredited,
		m.IsPosted,
		m.Amount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	if len(txn.LineItems) > 0 {
		batch := &pgx.Batch{}
		for _, li := range txn.LineItems {
			batch.Queue(insertLineItemQuery, lineItemArgs(li)...)
		}
		br := tx.SendBatch(ctx, batch)
		for range txn.LineItems {
			if _, err = br.Exec(); err != nil {
				_ = br.Close()
				return apperrors.NewAppError(500, "failed to insert line item", err)
			}
		}
		if err = br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close line item batch", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) SaveLineItem(ctx context.Context, tx pgx.Tx, lineItem domain.LineItem) error {
	if _, err := r.db(tx).Exec(ctx, insertLineItemQuery, lineItemArgs(lineItem)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: line item with ID %s already exists", apperrors.ErrDuplicate, lineItem.LineItemID)
		}
		return apperrors.NewAppError(500, "failed to insert line item", err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateLineItem(ctx context.Context, tx pgx.Tx, lineItem domain.LineItem) error {
	m := mapping.ToModelLineItem(lineItem)
	cmdTag, err := r.db(tx).Exec(ctx, `
		UPDATE line_items
		SET account_id = $3, narration = $4, quantity = $5, amount = $6,
		    vat_id = $7, vat_inclusive = $8, vat_account_id = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1 AND line_item_id = $2;`,
		m.TransactionID,
		m.LineItemID,
		m.AccountID,
		m.Narration,
		m.Quantity,
		m.Amount,
		m.VatID,
		m.VatInclusive,
		m.VatAccountID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update line item "+lineItem.LineItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("line item", lineItem.LineItemID)
	}
	return nil
}

func (r *PgxTransactionRepository) MarkPosted(ctx context.Context, tx pgx.Tx, transactionID string, amount, exchangeRate decimal.Decimal, userID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET is_posted = TRUE, amount = $2, exchange_rate = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND deleted_at IS NULL;`,
		transactionID, amount, exchangeRate, at, userID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark transaction posted", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction", transactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, tx pgx.Tx, entityID, transactionID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE transactions SET deleted_at = $3 WHERE entity_id = $1 AND transaction_id = $2 AND deleted_at IS NULL;`,
		entityID, transactionID, at,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction", transactionID)
	}
	return nil
}
