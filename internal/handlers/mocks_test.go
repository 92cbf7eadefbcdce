package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock Services ---

type MockEntityService struct{ mock.Mock }

func (m *MockEntityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, userID string) (*domain.Entity, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) GetEntity(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) GetReportingPeriod(ctx context.Context, entityID string, year int) (*domain.ReportingPeriod, error) {
	args := m.Called(ctx, entityID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportingPeriod), args.Error(1)
}

func (m *MockEntityService) ClosePeriod(ctx context.Context, lctx domain.LedgerContext, year int) (*domain.ReportingPeriod, error) {
	args := m.Called(ctx, lctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportingPeriod), args.Error(1)
}

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) GetAccountByID(ctx context.Context, lctx domain.LedgerContext, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, lctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, lctx domain.LedgerContext, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, lctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, lctx domain.LedgerContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, lctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, lctx domain.LedgerContext, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, lctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, lctx domain.LedgerContext, accountID string) error {
	args := m.Called(ctx, lctx, accountID)
	return args.Error(0)
}

func (m *MockAccountService) CreateCategory(ctx context.Context, lctx domain.LedgerContext, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, lctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

type MockVatService struct{ mock.Mock }

func (m *MockVatService) CreateVat(ctx context.Context, lctx domain.LedgerContext, req dto.CreateVatRequest) (*domain.Vat, error) {
	args := m.Called(ctx, lctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vat), args.Error(1)
}

func (m *MockVatService) GetVat(ctx context.Context, lctx domain.LedgerContext, vatID string) (*domain.Vat, error) {
	args := m.Called(ctx, lctx, vatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vat), args.Error(1)
}

type MockExchangeRateService struct{ mock.Mock }

func (m *MockExchangeRateService) Rate(ctx context.Context, entityID, currencyCode string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, entityID, currencyCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, lctx domain.LedgerContext, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, lctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) GetApplicableRate(ctx context.Context, lctx domain.LedgerContext, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, lctx, currencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

type MockTransactionService struct{ mock.Mock }

func (m *MockTransactionService) GetTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, lctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, lctx domain.LedgerContext, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, lctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) AddLineItem(ctx context.Context, lctx domain.LedgerContext, transactionID string, req dto.LineItemRequest) (*domain.LineItem, error) {
	args := m.Called(ctx, lctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockTransactionService) UpdateLineItem(ctx context.Context, lctx domain.LedgerContext, transactionID, lineItemID string, req dto.LineItemRequest) (*domain.LineItem, error) {
	args := m.Called(ctx, lctx, transactionID, lineItemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string) error {
	args := m.Called(ctx, lctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) PostTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string, req dto.PostTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, lctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

type MockBalanceService struct{ mock.Mock }

func (m *MockBalanceService) Balance(ctx context.Context, lctx domain.LedgerContext, accountID string, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, lctx, accountID, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) Contribution(ctx context.Context, lctx domain.LedgerContext, accountID, transactionID string) (decimal.Decimal, error) {
	args := m.Called(ctx, lctx, accountID, transactionID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) OpeningBalance(ctx context.Context, lctx domain.LedgerContext, accountID string, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, lctx, accountID, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) ClosingBalance(ctx context.Context, lctx domain.LedgerContext, accountID string, endDate time.Time) (accounting.AccountStatement, error) {
	args := m.Called(ctx, lctx, accountID, endDate)
	return args.Get(0).(accounting.AccountStatement), args.Error(1)
}

func (m *MockBalanceService) CreateOpeningBalance(ctx context.Context, lctx domain.LedgerContext, req dto.CreateBalanceRequest) (*domain.Balance, error) {
	args := m.Called(ctx, lctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceService) ListAccountEntries(ctx context.Context, lctx domain.LedgerContext, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, lctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

type MockAssignmentService struct{ mock.Mock }

func (m *MockAssignmentService) BulkAssign(ctx context.Context, lctx domain.LedgerContext, transactionID string, forexAccountID *string) ([]domain.Assignment, error) {
	args := m.Called(ctx, lctx, transactionID, forexAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) Assign(ctx context.Context, lctx domain.LedgerContext, req dto.CreateAssignmentRequest) (*domain.Assignment, error) {
	args := m.Called(ctx, lctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) DeleteAssignment(ctx context.Context, lctx domain.LedgerContext, assignmentID string) error {
	args := m.Called(ctx, lctx, assignmentID)
	return args.Error(0)
}

type MockLedgerService struct{ mock.Mock }

func (m *MockLedgerService) VerifyChain(ctx context.Context, entityID string) (*domain.ChainVerification, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChainVerification), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.EntitySvcFacade       = (*MockEntityService)(nil)
	_ portssvc.AccountSvcFacade      = (*MockAccountService)(nil)
	_ portssvc.VatSvcFacade          = (*MockVatService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)
	_ portssvc.TransactionSvcFacade  = (*MockTransactionService)(nil)
	_ portssvc.BalanceSvcFacade      = (*MockBalanceService)(nil)
	_ portssvc.AssignmentSvcFacade   = (*MockAssignmentService)(nil)
	_ portssvc.LedgerSvcFacade       = (*MockLedgerService)(nil)
)
