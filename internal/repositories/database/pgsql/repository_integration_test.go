//go:build integration

package pgsql_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type LedgerStoreSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
	svc       *portssvc.ServiceContainer
	lctx      domain.LedgerContext

	receivable string
	bank       string
	revenue    string
	vatControl string
	vatID      string
}

func TestLedgerStoreSuite(t *testing.T) {
	suite.Run(t, new(LedgerStoreSuite))
}

func (s *LedgerStoreSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ledger_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err, "start postgres container")
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = database.MigrateUp(connStr, "file://"+findMigrationsDir(s.T()), logger)
	s.Require().NoError(err, "run migrations")

	s.pool, err = database.NewPgxPool(s.ctx, connStr, true)
	s.Require().NoError(err)

	cfg := &config.Config{HashingAlgorithm: "sha256", ChainGenesisSeed: "integration-seed", VerifyPageSize: 3}
	s.repos = pgsql.NewRepositoryProvider(s.pool)
	s.svc, err = services.NewServiceContainer(cfg, s.repos)
	s.Require().NoError(err)
}

// SetupTest gives every test its own entity, and so its own hash chain.
func (s *LedgerStoreSuite) SetupTest() {
	s.seedChartOfAccounts()
}

func (s *LedgerStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// findMigrationsDir walks up from the package directory to the module root.
func findMigrationsDir(t *testing.T) string {
	dir, err := os.Getwd()
	require.NoError(t, err)
	for range 10 {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	t.Fatal("migrations directory not found")
	return ""
}

func (s *LedgerStoreSuite) seedChartOfAccounts() {
	entity, err := s.svc.Entity.CreateEntity(s.ctx, dto.CreateEntityRequest{Name: "Acme", ReportingCurrency: "KES"}, "user-1")
	s.Require().NoError(err)
	s.lctx = domain.NewLedgerContext(entity.EntityID, "user-1")

	create := func(name string, t domain.AccountType) string {
		acc, err := s.svc.Account.CreateAccount(s.ctx, s.lctx, dto.CreateAccountRequest{Name: name, AccountType: t})
		s.Require().NoError(err)
		return acc.AccountID
	}
	s.receivable = create("Debtors", domain.Receivable)
	s.bank = create("Bank", domain.Bank)
	s.revenue = create("Sales", domain.OperatingRevenue)
	s.vatControl = create("VAT", domain.Control)

	vat, err := s.svc.Vat.CreateVat(s.ctx, s.lctx, dto.CreateVatRequest{
		Name: "Standard", Code: "S", Rate: decimal.NewFromInt(16), AccountID: &s.vatControl,
	})
	s.Require().NoError(err)
	s.vatID = vat.VatID
}

func (s *LedgerStoreSuite) createTransaction(t domain.TransactionType, date time.Time, main, line string, amount int64, vatID *string) *domain.Transaction {
	txn, err := s.svc.Transaction.CreateTransaction(s.ctx, s.lctx, dto.CreateTransactionRequest{
		TransactionType: t,
		TransactionDate: date,
		AccountID:       main,
		LineItems: []dto.LineItemRequest{
			{AccountID: line, Amount: decimal.NewFromInt(amount), VatID: vatID},
		},
	})
	s.Require().NoError(err)
	return txn
}

func (s *LedgerStoreSuite) TestPostSettleAndVerify() {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	invoice := s.createTransaction(domain.ClientInvoice, date, s.receivable, s.revenue, 100, &s.vatID)
	posted, err := s.svc.Transaction.PostTransaction(s.ctx, s.lctx, invoice.TransactionID, dto.PostTransactionRequest{})
	s.Require().NoError(err)
	s.True(posted.IsPosted)
	s.True(decimal.NewFromInt(100).Equal(posted.Amount), "amount excludes VAT, got %s", posted.Amount)

	balance, err := s.svc.Balance.Balance(s.ctx, s.lctx, s.receivable, date, date)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(116).Equal(balance), "receivable debited with gross amount, got %s", balance)

	vatBalance, err := s.svc.Balance.Balance(s.ctx, s.lctx, s.vatControl, date, date)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(-16).Equal(vatBalance))

	// Contribution folds the live rows; it matches the stored range sum.
	live, err := s.repos.LedgerRepo.ListTransactionEntries(s.ctx, invoice.TransactionID)
	s.Require().NoError(err)
	s.Len(live, 4)
	contribution, err := s.svc.Balance.Contribution(s.ctx, s.lctx, s.receivable, invoice.TransactionID)
	s.Require().NoError(err)
	s.True(contribution.Equal(balance), "contribution %s, balance %s", contribution, balance)
	s.NoError(accounting.ValidateEntriesBalance(live))

	// Re-posting supersedes rather than duplicates.
	_, err = s.svc.Transaction.PostTransaction(s.ctx, s.lctx, invoice.TransactionID, dto.PostTransactionRequest{})
	s.Require().NoError(err)
	balance, err = s.svc.Balance.Balance(s.ctx, s.lctx, s.receivable, date, date)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(116).Equal(balance))

	receipt := s.createTransaction(domain.ClientReceipt, date.AddDate(0, 0, 5), s.receivable, s.bank, 116, nil)
	settled, err := s.svc.Transaction.PostTransaction(s.ctx, s.lctx, receipt.TransactionID, dto.PostTransactionRequest{AutoAssign: true})
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(100).Equal(settled.AssignedAmount))
	s.True(decimal.NewFromInt(16).Equal(settled.Balance()))

	cleared, err := s.svc.Transaction.GetTransaction(s.ctx, s.lctx, invoice.TransactionID)
	s.Require().NoError(err)
	s.True(cleared.UnclearedAmount().IsZero())

	statement, err := s.svc.Balance.ClosingBalance(s.ctx, s.lctx, s.receivable, date.AddDate(0, 1, 0))
	s.Require().NoError(err)
	s.True(statement.Closing.IsZero(), "closing balance %s", statement.Closing)

	verification, err := s.svc.Ledger.VerifyChain(s.ctx, s.lctx.EntityID)
	s.Require().NoError(err)
	s.True(verification.Valid)
	s.Equal(int64(10), verification.EntriesVerified) // 4 + 4 superseded-and-rewritten + 2

	page, err := s.svc.Balance.ListAccountEntries(s.ctx, s.lctx, s.receivable, dto.ListEntriesParams{Limit: 1})
	s.Require().NoError(err)
	s.Len(page.Entries, 1)
	s.Require().NotNil(page.NextToken)
	s.Equal(receipt.TransactionID, page.Entries[0].TransactionID)

	next, err := s.svc.Balance.ListAccountEntries(s.ctx, s.lctx, s.receivable, dto.ListEntriesParams{Limit: 5, NextToken: page.NextToken})
	s.Require().NoError(err)
	s.NotEmpty(next.Entries)
	s.Nil(next.NextToken)
	for _, e := range next.Entries {
		s.Equal(invoice.TransactionID, e.TransactionID)
	}

	err = s.svc.Transaction.DeleteTransaction(s.ctx, s.lctx, invoice.TransactionID)
	s.ErrorIs(err, apperrors.ErrPostedTransaction)
}

func (s *LedgerStoreSuite) TestLedgerRowsAreAppendOnlyAndTamperingIsDetected() {
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	journal := s.createTransaction(domain.JournalEntry, date, s.bank, s.revenue, 40, nil)
	_, err := s.svc.Transaction.PostTransaction(s.ctx, s.lctx, journal.TransactionID, dto.PostTransactionRequest{})
	s.Require().NoError(err)

	_, err = s.pool.Exec(s.ctx, `UPDATE ledgers SET amount = amount + 1 WHERE transaction_id = $1`, journal.TransactionID)
	s.Error(err, "append-only trigger must reject amount changes")
	_, err = s.pool.Exec(s.ctx, `DELETE FROM ledgers WHERE transaction_id = $1`, journal.TransactionID)
	s.Error(err, "append-only trigger must reject deletes")

	tx, err := s.pool.Begin(s.ctx)
	s.Require().NoError(err)
	_, err = tx.Exec(s.ctx, `ALTER TABLE ledgers DISABLE TRIGGER trg_ledgers_append_only`)
	s.Require().NoError(err)
	_, err = tx.Exec(s.ctx, `UPDATE ledgers SET amount = amount + 1 WHERE transaction_id = $1`, journal.TransactionID)
	s.Require().NoError(err)
	_, err = tx.Exec(s.ctx, `ALTER TABLE ledgers ENABLE TRIGGER trg_ledgers_append_only`)
	s.Require().NoError(err)
	s.Require().NoError(tx.Commit(s.ctx))

	verification, err := s.svc.Ledger.VerifyChain(s.ctx, s.lctx.EntityID)
	s.Require().NoError(err)
	s.False(verification.Valid)
	s.Require().NotNil(verification.Break)
}

func (s *LedgerStoreSuite) TestClosedPeriodRejectsPosting() {
	_, err := s.svc.Entity.ClosePeriod(s.ctx, s.lctx, 2019)
	s.Require().NoError(err)

	old := s.createTransaction(domain.JournalEntry, time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), s.bank, s.revenue, 10, nil)
	_, err = s.svc.Transaction.PostTransaction(s.ctx, s.lctx, old.TransactionID, dto.PostTransactionRequest{})
	s.ErrorIs(err, apperrors.ErrClosedReportingPeriod)

	count, err := pgsqlCount(s.ctx, s.pool, old.TransactionID)
	s.Require().NoError(err)
	s.Zero(count)
}

func pgsqlCount(ctx context.Context, pool *pgxpool.Pool, transactionID string) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledgers WHERE transaction_id = $1`, transactionID).Scan(&n)
	return n, err
}
