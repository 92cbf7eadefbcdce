package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	lctx        domain.LedgerContext
	accountRepo *MockAccountRepository
	entityRepo  *MockEntityRepository
	ledgerRepo  *MockLedgerRepository
	balanceRepo *MockBalanceRepository
	rateRepo    *MockExchangeRateRepository
	service     portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.lctx = domain.NewLedgerContext("e1", "u1")
	suite.accountRepo = new(MockAccountRepository)
	suite.entityRepo = new(MockEntityRepository)
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.balanceRepo = new(MockBalanceRepository)
	suite.rateRepo = new(MockExchangeRateRepository)

	// fiscal year starts in July
	suite.entityRepo.On("FindEntityByID", mock.Anything, "e1").
		Return(&domain.Entity{EntityID: "e1", ReportingCurrency: "USD", YearStart: 7}, nil).Maybe()
	suite.accountRepo.On("FindAccountByID", mock.Anything, "e1", "bank").
		Return(&domain.Account{AccountID: "bank", CurrencyCode: "USD"}, nil).Maybe()

	rates := services.NewExchangeRateService(suite.rateRepo, suite.entityRepo)
	suite.service = services.NewBalanceService(suite.accountRepo, suite.entityRepo, suite.ledgerRepo, suite.balanceRepo, rates)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

func (suite *BalanceServiceTestSuite) TestBalance_EndDateInclusive() {
	start := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	suite.ledgerRepo.On("SumBalance", suite.ctx, "bank",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 23, 59, 59, 999999000, time.UTC)).
		Return(decimal.NewFromInt(42), nil).Once()

	balance, err := suite.service.Balance(suite.ctx, suite.lctx, "bank", start, end)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(42)))
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestClosingBalance_OpeningPlusMovement() {
	endDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.balanceRepo.On("FindBalancesByAccountYear", suite.ctx, "bank", 2023).Return([]domain.Balance{
		{BalanceType: domain.Debit, Amount: decimal.NewFromInt(200), ExchangeRate: decimal.NewFromInt(2)},
		{BalanceType: domain.Credit, Amount: decimal.NewFromInt(30), ExchangeRate: decimal.NewFromInt(1)},
	}, nil).Once()
	suite.ledgerRepo.On("SumBalance", suite.ctx, "bank",
		time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 23, 59, 59, 999999000, time.UTC)).
		Return(decimal.NewFromInt(25), nil).Once()

	statement, err := suite.service.ClosingBalance(suite.ctx, suite.lctx, "bank", endDate)

	suite.Require().NoError(err)
	suite.Equal(2023, statement.Year)
	suite.True(statement.Opening.Equal(decimal.NewFromInt(70)))
	suite.True(statement.Movement.Equal(decimal.NewFromInt(25)))
	suite.True(statement.Closing.Equal(decimal.NewFromInt(95)))
}

func (suite *BalanceServiceTestSuite) TestClosingBalance_NoActivityIsZero() {
	suite.balanceRepo.On("FindBalancesByAccountYear", suite.ctx, "bank", 2024).Return([]domain.Balance{}, nil).Once()
	suite.ledgerRepo.On("SumBalance", suite.ctx, "bank", mock.Anything, mock.Anything).Return(decimal.Zero, nil).Once()

	statement, err := suite.service.ClosingBalance(suite.ctx, suite.lctx, "bank", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.True(statement.Closing.IsZero())
}

func (suite *BalanceServiceTestSuite) TestCreateOpeningBalance_DateMustPrecedeYear() {
	_, err := suite.service.CreateOpeningBalance(suite.ctx, suite.lctx, dto.CreateBalanceRequest{
		AccountID:       "bank",
		Year:            2024,
		TransactionType: domain.ClientInvoice,
		TransactionDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		BalanceType:     domain.Debit,
		Amount:          decimal.NewFromInt(10),
	})

	suite.ErrorIs(err, apperrors.ErrInvalidBalanceDate)
	suite.balanceRepo.AssertNotCalled(suite.T(), "SaveBalance", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestCreateOpeningBalance_ResolvesRate() {
	date := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.rateRepo.On("FindApplicableRate", suite.ctx, "e1", "EUR", date).
		Return(&domain.ExchangeRate{Rate: decimal.RequireFromString("0.9")}, nil).Once()
	suite.balanceRepo.On("SaveBalance", suite.ctx, mock.MatchedBy(func(b domain.Balance) bool {
		return b.CurrencyCode == "EUR" && b.ExchangeRate.Equal(decimal.RequireFromString("0.9")) && b.ClearedAmount.IsZero()
	})).Return(nil).Once()

	balance, err := suite.service.CreateOpeningBalance(suite.ctx, suite.lctx, dto.CreateBalanceRequest{
		AccountID:       "bank",
		CurrencyCode:    "eur",
		Year:            2024,
		TransactionType: domain.SupplierBill,
		TransactionDate: date,
		BalanceType:     domain.Credit,
		Amount:          decimal.NewFromInt(10),
	})

	suite.Require().NoError(err)
	suite.Equal(2024, balance.Year)
	suite.balanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestCreateOpeningBalance_NegativeAmount() {
	_, err := suite.service.CreateOpeningBalance(suite.ctx, suite.lctx, dto.CreateBalanceRequest{
		AccountID:       "bank",
		Year:            2024,
		TransactionType: domain.ClientInvoice,
		TransactionDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		BalanceType:     domain.Debit,
		Amount:          decimal.NewFromInt(-1),
	})
	suite.ErrorIs(err, apperrors.ErrNegativeAmount)
}

func (suite *BalanceServiceTestSuite) TestListAccountEntries_EmptyPage() {
	suite.ledgerRepo.On("ListEntriesByAccount", suite.ctx, "e1", "bank", 20, (*string)(nil)).Return(nil, nil, nil).Once()

	page, err := suite.service.ListAccountEntries(suite.ctx, suite.lctx, "bank", dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.NotNil(page.Entries)
	suite.Empty(page.Entries)
	suite.Nil(page.NextToken)
}

func (suite *BalanceServiceTestSuite) TestContribution_FoldsLiveTransactionEntries() {
	suite.ledgerRepo.On("ListTransactionEntries", suite.ctx, "t1").Return([]domain.LedgerEntry{
		{TransactionID: "t1", PostAccount: "bank", EntryType: domain.Debit, Amount: decimal.NewFromInt(116)},
		{TransactionID: "t1", PostAccount: "revenue", EntryType: domain.Credit, Amount: decimal.NewFromInt(100)},
		{TransactionID: "t1", PostAccount: "bank", EntryType: domain.Credit, Amount: decimal.NewFromInt(6)},
	}, nil).Once()

	contribution, err := suite.service.Contribution(suite.ctx, suite.lctx, "bank", "t1")

	suite.Require().NoError(err)
	suite.True(contribution.Equal(decimal.NewFromInt(110)), "got %s", contribution)
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestContribution_NoEntriesIsZero() {
	suite.ledgerRepo.On("ListTransactionEntries", suite.ctx, "t2").Return(nil, nil).Once()

	contribution, err := suite.service.Contribution(suite.ctx, suite.lctx, "bank", "t2")

	suite.Require().NoError(err)
	suite.True(contribution.IsZero())
}
