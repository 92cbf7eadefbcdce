package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxVatRepository struct {
	BaseRepository
}

func newPgxVatRepository(pool *pgxpool.Pool) *PgxVatRepository {
	return &PgxVatRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VatRepositoryFacade = (*PgxVatRepository)(nil)

const vatColumns = `vat_id, entity_id, name, code, rate, account_id, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxVatRepository) SaveVat(ctx context.Context, vat domain.Vat) error {
	query := `INSERT INTO vats (` + vatColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.Pool.Exec(ctx, query,
		vat.VatID,
		vat.EntityID,
		vat.Name,
		vat.Code,
		vat.Rate,
		vat.AccountID,
		vat.CreatedAt,
		vat.CreatedBy,
		vat.LastUpdatedAt,
		vat.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: vat with ID %s already exists", apperrors.ErrDuplicate, vat.VatID)
		}
		return apperrors.NewAppError(500, "failed to save vat "+vat.VatID, err)
	}
	return nil
}

func (r *PgxVatRepository) FindVatByID(ctx context.Context, entityID, vatID string) (*domain.Vat, error) {
	query := `SELECT ` + vatColumns + ` FROM vats WHERE entity_id = $1 AND vat_id = $2;`
	vat, err := scanVat(r.Pool.QueryRow(ctx, query, entityID, vatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("vat", vatID)
		}
		return nil, apperrors.NewAppError(500, "failed to find vat "+vatID, err)
	}
	return vat, nil
}

// findVatsByIDs loads VAT definitions keyed by id for attaching to line items.
func (r *PgxVatRepository) findVatsByIDs(ctx context.Context, q querier, vatIDs []string) (map[string]domain.Vat, error) {
	vats := make(map[string]domain.Vat, len(vatIDs))
	if len(vatIDs) == 0 {
		return vats, nil
	}
	rows, err := q.Query(ctx, `SELECT `+vatColumns+` FROM vats WHERE vat_id = ANY($1);`, vatIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vats", err)
	}
	defer rows.Close()
	for rows.Next() {
		vat, err := scanVat(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vat", err)
		}
		vats[vat.VatID] = *vat
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating vats", err)
	}
	return vats, nil
}

func scanVat(row pgx.Row) (*domain.Vat, error) {
	var v domain.Vat
	err := row.Scan(
		&v.VatID,
		&v.EntityID,
		&v.Name,
		&v.Code,
		&v.Rate,
		&v.AccountID,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
