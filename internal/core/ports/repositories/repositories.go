package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	EntityRepo       EntityRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	VatRepo          VatRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	AssignmentRepo   AssignmentRepositoryFacade
	BalanceRepo      BalanceRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	TombstoneRepo    TombstoneWriter
}
