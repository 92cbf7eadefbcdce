package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateResolver resolves the rate converting currency into the entity's reporting currency.
type ExchangeRateResolver interface {
	// Rate returns 1 for the reporting currency, otherwise the applicable stored rate.
	Rate(ctx context.Context, entityID, currencyCode string, asOf time.Time) (decimal.Decimal, error)
}

// ExchangeRateSvcFacade combines rate recording and resolution
type ExchangeRateSvcFacade interface {
	ExchangeRateResolver
	CreateExchangeRate(ctx context.Context, lctx domain.LedgerContext, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)
	GetApplicableRate(ctx context.Context, lctx domain.LedgerContext, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error)
}
