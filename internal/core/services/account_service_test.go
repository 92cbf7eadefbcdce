package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockBalanceCalculator is a mock type for the BalanceCalculatorSvc interface
type MockBalanceCalculator struct {
	mock.Mock
}

func (m *MockBalanceCalculator) Balance(ctx context.Context, lctx domain.LedgerContext, accountID string, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, lctx, accountID, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceCalculator) Contribution(ctx context.Context, lctx domain.LedgerContext, accountID, transactionID string) (decimal.Decimal, error) {
	args := m.Called(ctx, lctx, accountID, transactionID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceCalculator) OpeningBalance(ctx context.Context, lctx domain.LedgerContext, accountID string, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, lctx, accountID, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceCalculator) ClosingBalance(ctx context.Context, lctx domain.LedgerContext, accountID string, endDate time.Time) (accounting.AccountStatement, error) {
	args := m.Called(ctx, lctx, accountID, endDate)
	return args.Get(0).(accounting.AccountStatement), args.Error(1)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	lctx       domain.LedgerContext
	mockRepo   *MockAccountRepository
	entityRepo *MockEntityRepository
	calc       *MockBalanceCalculator
	tombstones *MockTombstoneRepository
	tx         *mockTx
	txm        *MockTxManager
	service    portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.lctx = domain.NewLedgerContext("e1", "u1")
	suite.mockRepo = new(MockAccountRepository)
	suite.entityRepo = new(MockEntityRepository)
	suite.calc = new(MockBalanceCalculator)
	suite.tombstones = new(MockTombstoneRepository)
	suite.tx = &mockTx{}
	suite.txm = new(MockTxManager)
	suite.entityRepo.On("FindEntityByID", mock.Anything, "e1").
		Return(&domain.Entity{EntityID: "e1", ReportingCurrency: "KES", YearStart: 1}, nil).Maybe()
	suite.service = services.NewAccountService(suite.mockRepo, suite.entityRepo,
		services.WithBalanceCalculator(suite.calc),
		services.WithAccountTombstones(suite.txm, suite.tombstones))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_AssignsCode() {
	req := dto.CreateAccountRequest{
		Name:        "Trade Debtors",
		AccountType: domain.Receivable,
	}
	suite.mockRepo.On("CountAccountsByType", suite.ctx, "e1", domain.Receivable).Return(3, nil).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, suite.lctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(5004, account.Code)
	suite.Equal("KES", account.CurrencyCode)
	suite.Equal("u1", account.CreatedBy)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_TypeErrors() {
	_, err := suite.service.CreateAccount(suite.ctx, suite.lctx, dto.CreateAccountRequest{Name: "No Type"})
	suite.ErrorIs(err, apperrors.ErrMissingAccountType)

	_, err = suite.service.CreateAccount(suite.ctx, suite.lctx, dto.CreateAccountRequest{Name: "Bad", AccountType: "PETTY"})
	suite.ErrorIs(err, apperrors.ErrInvalidAccountType)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CategoryTypeMismatch() {
	suite.mockRepo.On("FindCategoryByID", suite.ctx, "e1", "cat1").
		Return(&domain.Category{CategoryID: "cat1", CategoryType: domain.Bank}, nil).Once()

	_, err := suite.service.CreateAccount(suite.ctx, suite.lctx, dto.CreateAccountRequest{
		Name:        "Sales",
		AccountType: domain.OperatingRevenue,
		CategoryID:  strPtr("cat1"),
	})

	suite.ErrorIs(err, apperrors.ErrInvalidCategoryType)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ImmutableTypeOnceUsed() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, "e1", "a1").
		Return(&domain.Account{AccountID: "a1", AccountType: domain.Bank}, nil).Once()
	suite.mockRepo.On("HasLedgerEntries", suite.ctx, "a1").Return(true, nil).Once()

	newType := domain.CurrentAsset
	_, err := suite.service.UpdateAccount(suite.ctx, suite.lctx, "a1", dto.UpdateAccountRequest{AccountType: &newType})

	suite.ErrorIs(err, apperrors.ErrImmutableAccountType)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Rename() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, "e1", "a1").
		Return(&domain.Account{AccountID: "a1", Name: "Old", AccountType: domain.Bank}, nil).Once()
	suite.mockRepo.On("UpdateAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "New" && a.LastUpdatedBy == "u1"
	})).Return(nil).Once()

	name := "New"
	account, err := suite.service.UpdateAccount(suite.ctx, suite.lctx, "a1", dto.UpdateAccountRequest{Name: &name})

	suite.Require().NoError(err)
	suite.Equal("New", account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_HangingBalance() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, "e1", "a1").Return(&domain.Account{AccountID: "a1"}, nil).Once()
	suite.calc.On("ClosingBalance", suite.ctx, suite.lctx, "a1", mock.AnythingOfType("time.Time")).
		Return(accounting.AccountStatement{Closing: decimal.NewFromInt(15)}, nil).Once()

	err := suite.service.DeleteAccount(suite.ctx, suite.lctx, "a1")

	suite.ErrorIs(err, apperrors.ErrHangingTransactions)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ZeroBalance() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, "e1", "a1").Return(&domain.Account{AccountID: "a1"}, nil).Once()
	suite.calc.On("ClosingBalance", suite.ctx, suite.lctx, "a1", mock.AnythingOfType("time.Time")).
		Return(accounting.AccountStatement{Closing: decimal.Zero}, nil).Once()
	suite.txm.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.mockRepo.On("DeleteAccount", suite.ctx, suite.tx, "e1", "a1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.tombstones.On("InsertTombstone", suite.ctx, suite.tx, mock.MatchedBy(func(t domain.Tombstone) bool {
		return t.RecyclableType == domain.RecyclableAccount && t.RecyclableID == "a1"
	})).Return(nil).Once()
	suite.txm.On("Commit", suite.ctx, suite.tx).Return(nil).Once()

	suite.NoError(suite.service.DeleteAccount(suite.ctx, suite.lctx, "a1"))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.tombstones.AssertExpectations(suite.T())
	suite.txm.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_TombstoneFailureRollsBack() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, "e1", "a1").Return(&domain.Account{AccountID: "a1"}, nil).Once()
	suite.calc.On("ClosingBalance", suite.ctx, suite.lctx, "a1", mock.AnythingOfType("time.Time")).
		Return(accounting.AccountStatement{Closing: decimal.Zero}, nil).Once()
	suite.txm.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.mockRepo.On("DeleteAccount", suite.ctx, suite.tx, "e1", "a1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.tombstones.On("InsertTombstone", suite.ctx, suite.tx, mock.Anything).
		Return(apperrors.NewAppError(500, "failed to insert tombstone", errors.New("disk full"))).Once()
	suite.txm.On("Rollback", suite.ctx, suite.tx).Return(nil).Once()

	err := suite.service.DeleteAccount(suite.ctx, suite.lctx, "a1")

	suite.Error(err)
	suite.txm.AssertExpectations(suite.T())
	suite.txm.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateCategory_InvalidType() {
	_, err := suite.service.CreateCategory(suite.ctx, suite.lctx, dto.CreateCategoryRequest{Name: "X", CategoryType: "NOPE"})
	suite.ErrorIs(err, apperrors.ErrInvalidCategoryType)
}

func TestVatService_CreateVat(t *testing.T) {
	ctx := context.Background()
	lctx := domain.NewLedgerContext("e1", "u1")

	t.Run("non-zero rate needs an account", func(t *testing.T) {
		svc := services.NewVatService(new(MockVatRepository), new(MockAccountRepository))
		_, err := svc.CreateVat(ctx, lctx, dto.CreateVatRequest{Name: "VAT", Code: "V16", Rate: decimal.NewFromInt(16)})
		assert.ErrorIs(t, err, apperrors.ErrMissingVatAccount)
	})

	t.Run("account must be a control account", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		accounts.On("FindAccountByID", ctx, "e1", "bank").Return(&domain.Account{AccountID: "bank", AccountType: domain.Bank}, nil)
		svc := services.NewVatService(new(MockVatRepository), accounts)
		_, err := svc.CreateVat(ctx, lctx, dto.CreateVatRequest{Name: "VAT", Code: "V16", Rate: decimal.NewFromInt(16), AccountID: strPtr("bank")})
		assert.ErrorIs(t, err, apperrors.ErrInvalidAccountType)
	})

	t.Run("zero rate without account", func(t *testing.T) {
		vats := new(MockVatRepository)
		vats.On("SaveVat", ctx, mock.AnythingOfType("domain.Vat")).Return(nil).Once()
		svc := services.NewVatService(vats, new(MockAccountRepository))
		vat, err := svc.CreateVat(ctx, lctx, dto.CreateVatRequest{Name: "Exempt", Code: "V0", Rate: decimal.Zero})
		assert.NoError(t, err)
		assert.Equal(t, "e1", vat.EntityID)
		vats.AssertExpectations(t)
	})
}
