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

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a new exchange rate record.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (exchange_rate_id, entity_id, currency_code, rate, valid_from, valid_to,
		                            created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.ExchangeRateID,
		rate.EntityID,
		rate.CurrencyCode,
		rate.Rate,
		rate.ValidFrom,
		rate.ValidTo,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: exchange rate %s already exists", apperrors.ErrDuplicate, rate.ExchangeRateID)
		}
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return nil
}

// FindApplicableRate picks the rate with the latest valid_from on or before asOf.
// Expiry is left to the caller.
func (r *PgxExchangeRateRepository) FindApplicableRate(ctx context.Context, entityID, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, entity_id, currency_code, rate, valid_from, valid_to,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE entity_id = $1 AND currency_code = $2
		  AND valid_from <= $3
		ORDER BY valid_from DESC, created_at DESC
		LIMIT 1;
	`
	var rate domain.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, entityID, currencyCode, asOf).Scan(
		&rate.ExchangeRateID,
		&rate.EntityID,
		&rate.CurrencyCode,
		&rate.Rate,
		&rate.ValidFrom,
		&rate.ValidTo,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate", fmt.Sprintf("%s as of %s", currencyCode, asOf.Format("2006-01-02")))
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}
	return &rate, nil
}
