package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// mockTx stands in for a live pgx transaction. Repositories are mocked, so it is never used.
type mockTx struct {
	pgx.Tx
}

// MockTxManager is a mock type for the TransactionManager interface
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// MockEntityRepository is a mock type for the EntityRepositoryFacade interface
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindReportingPeriod(ctx context.Context, entityID string, year int) (*domain.ReportingPeriod, error) {
	args := m.Called(ctx, entityID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportingPeriod), args.Error(1)
}

func (m *MockEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockEntityRepository) SaveReportingPeriod(ctx context.Context, period domain.ReportingPeriod) error {
	return m.Called(ctx, period).Error(0)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, entityID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, entityID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, entityID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccountsByType(ctx context.Context, entityID string, accountType domain.AccountType) (int, error) {
	args := m.Called(ctx, entityID, accountType)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) HasLedgerEntries(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, tx pgx.Tx, entityID, accountID string, deletedAt time.Time) error {
	return m.Called(ctx, tx, entityID, accountID, deletedAt).Error(0)
}

func (m *MockAccountRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockAccountRepository) FindCategoryByID(ctx context.Context, entityID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, entityID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// MockVatRepository is a mock type for the VatRepositoryFacade interface
type MockVatRepository struct {
	mock.Mock
}

func (m *MockVatRepository) SaveVat(ctx context.Context, vat domain.Vat) error {
	return m.Called(ctx, vat).Error(0)
}

func (m *MockVatRepository) FindVatByID(ctx context.Context, entityID, vatID string) (*domain.Vat, error) {
	args := m.Called(ctx, entityID, vatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vat), args.Error(1)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, entityID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, entityID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, entityID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, entityID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindLineItemByID(ctx context.Context, transactionID, lineItemID string) (*domain.LineItem, error) {
	args := m.Called(ctx, transactionID, lineItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) SaveLineItem(ctx context.Context, tx pgx.Tx, lineItem domain.LineItem) error {
	return m.Called(ctx, tx, lineItem).Error(0)
}

func (m *MockTransactionRepository) UpdateLineItem(ctx context.Context, tx pgx.Tx, lineItem domain.LineItem) error {
	return m.Called(ctx, tx, lineItem).Error(0)
}

func (m *MockTransactionRepository) MarkPosted(ctx context.Context, tx pgx.Tx, transactionID string, amount, exchangeRate decimal.Decimal, userID string, at time.Time) error {
	return m.Called(ctx, tx, transactionID, amount, exchangeRate, userID, at).Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, tx pgx.Tx, entityID, transactionID string, at time.Time) error {
	return m.Called(ctx, tx, entityID, transactionID, at).Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) LockChain(ctx context.Context, tx pgx.Tx, entityID string) error {
	return m.Called(ctx, tx, entityID).Error(0)
}

func (m *MockLedgerRepository) FindChainTail(ctx context.Context, tx pgx.Tx, entityID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SupersedeTransactionEntries(ctx context.Context, tx pgx.Tx, transactionID string, at time.Time) (int64, error) {
	args := m.Called(ctx, tx, transactionID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) InsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	return m.Called(ctx, tx, entries).Error(0)
}

func (m *MockLedgerRepository) CountTransactionEntries(ctx context.Context, tx pgx.Tx, transactionID string) (int, error) {
	args := m.Called(ctx, tx, transactionID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionEntries(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumBalance(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, entityID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, entityID, accountID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), next, args.Error(2)
}

func (m *MockLedgerRepository) ListChainPage(ctx context.Context, entityID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, entityID, afterSequence, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockAssignmentRepository is a mock type for the AssignmentRepositoryFacade interface
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, entityID, assignmentID string) (*domain.Assignment, error) {
	args := m.Called(ctx, entityID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindClearableForUpdate(ctx context.Context, tx pgx.Tx, entityID string, ref domain.ClearedRef) (*domain.Clearable, error) {
	args := m.Called(ctx, tx, entityID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clearable), args.Error(1)
}

func (m *MockAssignmentRepository) ListOutstandingClearables(ctx context.Context, tx pgx.Tx, entityID, accountID, currencyCode string, credited bool) ([]domain.Clearable, error) {
	args := m.Called(ctx, tx, entityID, accountID, currencyCode, credited)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Clearable), args.Error(1)
}

func (m *MockAssignmentRepository) InsertAssignments(ctx context.Context, tx pgx.Tx, assignments []domain.Assignment) error {
	return m.Called(ctx, tx, assignments).Error(0)
}

func (m *MockAssignmentRepository) SoftDeleteAssignment(ctx context.Context, tx pgx.Tx, entityID, assignmentID string, at time.Time) error {
	return m.Called(ctx, tx, entityID, assignmentID, at).Error(0)
}

// MockBalanceRepository is a mock type for the BalanceRepositoryFacade interface
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) SaveBalance(ctx context.Context, balance domain.Balance) error {
	return m.Called(ctx, balance).Error(0)
}

func (m *MockBalanceRepository) FindBalancesByAccountYear(ctx context.Context, accountID string, year int) ([]domain.Balance, error) {
	args := m.Called(ctx, accountID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

// MockExchangeRateRepository is a mock type for the ExchangeRateRepositoryFacade interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindApplicableRate(ctx context.Context, entityID, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, entityID, currencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	return m.Called(ctx, rate).Error(0)
}

// MockTombstoneRepository is a mock type for the TombstoneWriter interface
type MockTombstoneRepository struct {
	mock.Mock
}

func (m *MockTombstoneRepository) InsertTombstone(ctx context.Context, tx pgx.Tx, tombstone domain.Tombstone) error {
	return m.Called(ctx, tx, tombstone).Error(0)
}
