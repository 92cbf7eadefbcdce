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

type PgxEntityRepository struct {
	BaseRepository
}

// newPgxEntityRepository creates a new repository for entities and reporting periods.
func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	query := `
		INSERT INTO entities (entity_id, name, reporting_currency, year_start, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		entity.EntityID,
		entity.Name,
		entity.ReportingCurrency,
		entity.YearStart,
		entity.CreatedAt,
		entity.CreatedBy,
		entity.LastUpdatedAt,
		entity.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entity with ID %s already exists", apperrors.ErrDuplicate, entity.EntityID)
		}
		return apperrors.NewAppError(500, "failed to save entity "+entity.EntityID, err)
	}
	return nil
}

func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `
		SELECT entity_id, name, reporting_currency, year_start, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE entity_id = $1;
	`
	var e domain.Entity
	err := r.Pool.QueryRow(ctx, query, entityID).Scan(
		&e.EntityID,
		&e.Name,
		&e.ReportingCurrency,
		&e.YearStart,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("entity", entityID)
		}
		return nil, apperrors.NewAppError(500, "failed to find entity "+entityID, err)
	}
	return &e, nil
}

func (r *PgxEntityRepository) FindReportingPeriod(ctx context.Context, entityID string, year int) (*domain.ReportingPeriod, error) {
	query := `
		SELECT reporting_period_id, entity_id, calendar_year, period_count, status, closing_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM reporting_periods
		WHERE entity_id = $1 AND calendar_year = $2;
	`
	var p domain.ReportingPeriod
	err := r.Pool.QueryRow(ctx, query, entityID, year).Scan(
		&p.ReportingPeriodID,
		&p.EntityID,
		&p.CalendarYear,
		&p.PeriodCount,
		&p.Status,
		&p.ClosingDate,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("reporting period", fmt.Sprintf("%s/%d", entityID, year))
		}
		return nil, apperrors.NewAppError(500, "failed to find reporting period", err)
	}
	return &p, nil
}

// SaveReportingPeriod upserts on (entity_id, calendar_year).
func (r *PgxEntityRepository) SaveReportingPeriod(ctx context.Context, period domain.ReportingPeriod) error {
	query := `
		INSERT INTO reporting_periods (reporting_period_id, entity_id, calendar_year, period_count, status, closing_date,
		                               created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (entity_id, calendar_year) DO UPDATE
		SET status = EXCLUDED.status,
		    closing_date = EXCLUDED.closing_date,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		period.ReportingPeriodID,
		period.EntityID,
		period.CalendarYear,
		period.PeriodCount,
		period.Status,
		period.ClosingDate,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save reporting period", err)
	}
	return nil
}
