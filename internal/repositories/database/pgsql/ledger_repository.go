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
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository over the append-only ledgers table.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `ledger_id, sequence, entity_id, transaction_id, line_item_id, vat_id, post_account, folio_account,
	entry_type, amount, posting_date, created_at, hash, previous_hash, superseded_at`

// signedAmount is debits positive, credits negative.
const signedAmount = `CASE WHEN entry_type = 'DEBIT' THEN amount ELSE -amount END`

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.LedgerID,
		&m.Sequence,
		&m.EntityID,
		&m.TransactionID,
		&m.LineItemID,
		&m.VatID,
		&m.PostAccount,
		&m.FolioAccount,
		&m.EntryType,
		&m.Amount,
		&m.PostingDate,
		&m.CreatedAt,
		&m.Hash,
		&m.PreviousHash,
		&m.SupersededAt,
	)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainLedgerEntry(m)
	return &e, nil
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()
	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entries", err)
	}
	return entries, nil
}

// LockChain takes a transaction-scoped advisory lock keyed by the entity.
func (r *PgxLedgerRepository) LockChain(ctx context.Context, tx pgx.Tx, entityID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, entityID); err != nil {
		return apperrors.NewAppError(500, "failed to lock ledger chain", err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindChainTail(ctx context.Context, tx pgx.Tx, entityID string) (*domain.LedgerEntry, error) {
	e, err := scanLedgerEntry(tx.QueryRow(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers WHERE entity_id = $1 ORDER BY sequence DESC LIMIT 1;`,
		entityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger chain tail", err)
	}
	return e, nil
}

func (r *PgxLedgerRepository) SupersedeTransactionEntries(ctx context.Context, tx pgx.Tx, transactionID string, at time.Time) (int64, error) {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE ledgers SET superseded_at = $2 WHERE transaction_id = $1 AND superseded_at IS NULL;`,
		transactionID, at)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to supersede ledger entries", err)
	}
	return cmdTag.RowsAffected(), nil
}

// InsertEntries writes sealed entries with a single batch round trip.
func (r *PgxLedgerRepository) InsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelLedgerEntry(e)
		batch.Queue(query,
			m.LedgerID,
			m.Sequence,
			m.EntityID,
			m.TransactionID,
			m.LineItemID,
			m.VatID,
			m.PostAccount,
			m.FolioAccount,
			m.EntryType,
			m.Amount,
			m.PostingDate,
			m.CreatedAt,
			m.Hash,
			m.PreviousHash,
			m.SupersededAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, e := range entries {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewAppError(409, "ledger sequence already taken", err)
			}
			return apperrors.NewAppError(500, "failed to insert ledger entry "+e.LedgerID, err)
		}
	}
	return nil
}

func (r *PgxLedgerRepository) CountTransactionEntries(ctx context.Context, tx pgx.Tx, transactionID string) (int, error) {
	var count int
	if err := r.db(tx).QueryRow(ctx,
		`SELECT COUNT(*) FROM ledgers WHERE transaction_id = $1;`, transactionID,
	).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count ledger entries", err)
	}
	return count, nil
}

// ListTransactionEntries returns the live entries of a transaction in chain order.
func (r *PgxLedgerRepository) ListTransactionEntries(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers WHERE transaction_id = $1 AND superseded_at IS NULL ORDER BY sequence ASC;`,
		transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction entries", err)
	}
	return collectLedgerEntries(rows)
}

func (r *PgxLedgerRepository) SumBalance(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(`+signedAmount+`), 0)
		FROM ledgers
		WHERE post_account = $1 AND superseded_at IS NULL
		  AND posting_date >= $2 AND posting_date <= $3;`,
		accountID, start, end,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum account balance", err)
	}
	return sum, nil
}

// ListEntriesByAccount pages newest first. The token is the (posting_date,
// sequence) of the last entry returned.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, entityID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := []any{entityID, accountID}
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledgers
		WHERE entity_id = $1 AND post_account = $2 AND superseded_at IS NULL`

	if nextToken != nil && *nextToken != "" {
		postingDate, sequence, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: %v", err)
		}
		query += ` AND (posting_date, sequence) < ($3, $4)`
		args = append(args, postingDate, sequence)
	}
	query += ` ORDER BY posting_date DESC, sequence DESC LIMIT ` + placeholder(len(args)+1) + `;`
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list account entries", err)
	}
	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeEntryToken(last.PostingDate, last.Sequence)
		next = &token
	}
	return entries, next, nil
}

func (r *PgxLedgerRepository) ListChainPage(ctx context.Context, entityID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledgers
		WHERE entity_id = $1 AND sequence > $2
		ORDER BY sequence ASC
		LIMIT $3;`,
		entityID, afterSequence, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read ledger chain", err)
	}
	return collectLedgerEntries(rows)
}
