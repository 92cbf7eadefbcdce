package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEntityService_CreateEntity(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEntityRepository)
	repo.On("SaveEntity", ctx, mock.AnythingOfType("domain.Entity")).Return(nil).Once()
	svc := services.NewEntityService(repo)

	entity, err := svc.CreateEntity(ctx, dto.CreateEntityRequest{Name: "Acme", ReportingCurrency: "kes"}, "u1")

	require.NoError(t, err)
	assert.Equal(t, "KES", entity.ReportingCurrency)
	assert.Equal(t, 1, entity.YearStart)
	repo.AssertExpectations(t)

	_, err = svc.CreateEntity(ctx, dto.CreateEntityRequest{Name: "Bad", ReportingCurrency: "ZZZ"}, "u1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEntityService_ClosePeriod(t *testing.T) {
	ctx := context.Background()
	lctx := domain.NewLedgerContext("e1", "u1")
	repo := new(MockEntityRepository)
	repo.On("FindEntityByID", ctx, "e1").Return(&domain.Entity{EntityID: "e1", YearStart: 4}, nil)
	repo.On("FindReportingPeriod", ctx, "e1", 2024).Return(nil, apperrors.NewNotFoundError("reporting period", "2024")).Once()
	repo.On("SaveReportingPeriod", ctx, mock.MatchedBy(func(p domain.ReportingPeriod) bool {
		return p.Status == domain.PeriodClosed && p.ReportingPeriodID != ""
	})).Return(nil).Once()
	svc := services.NewEntityService(repo)

	period, err := svc.ClosePeriod(ctx, lctx, 2024)

	require.NoError(t, err)
	assert.True(t, period.IsClosed())
	require.NotNil(t, period.ClosingDate)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999999000, time.UTC), *period.ClosingDate)
	repo.AssertExpectations(t)
}

func TestExchangeRateService(t *testing.T) {
	ctx := context.Background()
	lctx := domain.NewLedgerContext("e1", "u1")
	entities := new(MockEntityRepository)
	entities.On("FindEntityByID", ctx, "e1").Return(&domain.Entity{EntityID: "e1", ReportingCurrency: "USD"}, nil)

	t.Run("reporting currency resolves to one", func(t *testing.T) {
		svc := services.NewExchangeRateService(new(MockExchangeRateRepository), entities)
		rate, err := svc.Rate(ctx, "e1", "usd", time.Now())
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	})

	t.Run("stored rate is absolute", func(t *testing.T) {
		rates := new(MockExchangeRateRepository)
		rates.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
			return r.Rate.Equal(decimal.RequireFromString("1.25")) && r.CurrencyCode == "GBP"
		})).Return(nil).Once()
		svc := services.NewExchangeRateService(rates, entities)
		_, err := svc.CreateExchangeRate(ctx, lctx, dto.CreateExchangeRateRequest{
			CurrencyCode: "gbp",
			Rate:         decimal.RequireFromString("-1.25"),
			ValidFrom:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		rates.AssertExpectations(t)
	})

	t.Run("zero rate rejected", func(t *testing.T) {
		svc := services.NewExchangeRateService(new(MockExchangeRateRepository), entities)
		_, err := svc.CreateExchangeRate(ctx, lctx, dto.CreateExchangeRateRequest{CurrencyCode: "GBP", Rate: decimal.Zero})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
