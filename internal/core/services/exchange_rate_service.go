package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService records and resolves rates into the reporting currency.
type ExchangeRateService struct {
	BaseService
	rateRepo   portsrepo.ExchangeRateRepositoryFacade
	entityRepo portsrepo.EntityReader
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, entityRepo portsrepo.EntityReader) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:   rateRepo,
		entityRepo: entityRepo,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, lctx domain.LedgerContext, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	// stored rates are always positive
	rate := req.Rate.Abs()
	if rate.IsZero() {
		return nil, apperrors.NewValidationError("exchange rate must be non-zero")
	}
	if req.ValidTo != nil && req.ValidTo.Before(req.ValidFrom) {
		return nil, apperrors.NewValidationError("validTo precedes validFrom")
	}

	entity, err := s.entityRepo.FindEntityByID(ctx, lctx.EntityID)
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == entity.ReportingCurrency {
		return nil, apperrors.NewValidationError("%s is the reporting currency", currency)
	}

	now := time.Now().UTC()
	record := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		EntityID:       lctx.EntityID,
		CurrencyCode:   currency,
		Rate:           rate,
		ValidFrom:      req.ValidFrom.UTC(),
		ValidTo:        req.ValidTo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     lctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: lctx.UserID,
		},
	}
	if err := s.rateRepo.SaveExchangeRate(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("currency", currency))
		return nil, err
	}
	return &record, nil
}

// GetApplicableRate returns the stored rate valid for currencyCode on asOf.
func (s *ExchangeRateService) GetApplicableRate(ctx context.Context, lctx domain.LedgerContext, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	return s.applicableRate(ctx, lctx.EntityID, strings.ToUpper(currencyCode), asOf)
}

// applicableRate is the latest rate starting on or before asOf. When that rate
// has expired no rate applies; an older one is never substituted.
func (s *ExchangeRateService) applicableRate(ctx context.Context, entityID, currency string, asOf time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindApplicableRate(ctx, entityID, currency, asOf)
	if err != nil {
		return nil, err
	}
	if rate.ExpiredAt(asOf) {
		return nil, apperrors.NewNotFoundError("exchange rate",
			fmt.Sprintf("%s as of %s (latest expired %s)", currency, asOf.Format("2006-01-02"), rate.ValidTo.Format("2006-01-02")))
	}
	return rate, nil
}

// Rate returns 1 for the reporting currency, otherwise the applicable stored rate.
// A missing rate surfaces as apperrors.ErrNotFound.
func (s *ExchangeRateService) Rate(ctx context.Context, entityID, currencyCode string, asOf time.Time) (decimal.Decimal, error) {
	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		return decimal.Zero, err
	}
	currency := strings.ToUpper(currencyCode)
	if currency == "" || currency == entity.ReportingCurrency {
		return decimal.NewFromInt(1), nil
	}
	rate, err := s.applicableRate(ctx, entityID, currency, asOf)
	if err != nil {
		s.LogDebug(ctx, "No applicable exchange rate",
			slog.String("currency", currency), slog.Time("as_of", asOf))
		return decimal.Zero, err
	}
	return rate.Rate, nil
}
