package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	lctx       domain.LedgerContext
	asOf       time.Time
	rateRepo   *MockExchangeRateRepository
	entityRepo *MockEntityRepository
	service    *services.ExchangeRateService
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.lctx = domain.NewLedgerContext("e1", "u1")
	suite.asOf = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	suite.rateRepo = new(MockExchangeRateRepository)
	suite.entityRepo = new(MockEntityRepository)
	suite.entityRepo.On("FindEntityByID", mock.Anything, "e1").
		Return(&domain.Entity{EntityID: "e1", ReportingCurrency: "USD", YearStart: 1}, nil).Maybe()
	suite.service = services.NewExchangeRateService(suite.rateRepo, suite.entityRepo)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func (suite *ExchangeRateServiceTestSuite) TestRate_ReportingCurrencyIsOne() {
	rate, err := suite.service.Rate(suite.ctx, "e1", "usd", suite.asOf)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.rateRepo.AssertNotCalled(suite.T(), "FindApplicableRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRate_OpenEndedLatestRate() {
	suite.rateRepo.On("FindApplicableRate", suite.ctx, "e1", "EUR", suite.asOf).Return(&domain.ExchangeRate{
		CurrencyCode: "EUR",
		Rate:         decimal.RequireFromString("1.08"),
		ValidFrom:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil).Once()

	rate, err := suite.service.Rate(suite.ctx, "e1", "eur", suite.asOf)

	suite.Require().NoError(err)
	suite.Equal("1.08", rate.String())
}

func (suite *ExchangeRateServiceTestSuite) TestRate_ExpiredLatestRateIsNotReplacedByOlderOne() {
	expired := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	suite.rateRepo.On("FindApplicableRate", suite.ctx, "e1", "EUR", suite.asOf).Return(&domain.ExchangeRate{
		CurrencyCode: "EUR",
		Rate:         decimal.RequireFromString("1.10"),
		ValidFrom:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:      &expired,
	}, nil).Once()

	rate, err := suite.service.Rate(suite.ctx, "e1", "EUR", suite.asOf)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.True(rate.IsZero())
	suite.rateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetApplicableRate_ValidToIsInclusive() {
	validTo := suite.asOf
	suite.rateRepo.On("FindApplicableRate", suite.ctx, "e1", "GBP", suite.asOf).Return(&domain.ExchangeRate{
		CurrencyCode: "GBP",
		Rate:         decimal.RequireFromString("1.27"),
		ValidFrom:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:      &validTo,
	}, nil).Once()

	rate, err := suite.service.GetApplicableRate(suite.ctx, suite.lctx, "gbp", suite.asOf)

	suite.Require().NoError(err)
	suite.Equal("GBP", rate.CurrencyCode)
}

func (suite *ExchangeRateServiceTestSuite) TestGetApplicableRate_NoRate() {
	suite.rateRepo.On("FindApplicableRate", suite.ctx, "e1", "JPY", suite.asOf).
		Return(nil, apperrors.NewNotFoundError("exchange rate", "JPY")).Once()

	rate, err := suite.service.GetApplicableRate(suite.ctx, suite.lctx, "JPY", suite.asOf)

	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
