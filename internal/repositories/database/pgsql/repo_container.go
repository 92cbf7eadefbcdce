package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	vatRepo := newPgxVatRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:        &BaseRepository{Pool: dbPool},
		EntityRepo:       newPgxEntityRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		VatRepo:          vatRepo,
		TransactionRepo:  newPgxTransactionRepository(dbPool, vatRepo),
		LedgerRepo:       newPgxLedgerRepository(dbPool),
		AssignmentRepo:   newPgxAssignmentRepository(dbPool),
		BalanceRepo:      newPgxBalanceRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		TombstoneRepo:    newPgxTombstoneRepository(dbPool),
	}
}
