package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/utils/hashchain"
)

// NewSealer builds the chain sealer described by the configuration.
func NewSealer(cfg *config.Config) (*hashchain.Sealer, error) {
	algorithm := hashchain.Algorithm(cfg.HashingAlgorithm)
	if algorithm == "" {
		algorithm = hashchain.SHA256
	}
	sealer, err := hashchain.NewSealer(algorithm, cfg.ChainGenesisSeed)
	if err != nil {
		return nil, fmt.Errorf("configure ledger hash chain: %w", err)
	}
	return sealer, nil
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	sealer, err := NewSealer(cfg)
	if err != nil {
		return nil, err
	}

	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	container.Entity = NewEntityService(repos.EntityRepo)
	rates := NewExchangeRateService(repos.ExchangeRateRepo, repos.EntityRepo)
	container.ExchangeRate = rates
	container.Balance = NewBalanceService(repos.AccountRepo, repos.EntityRepo, repos.LedgerRepo, repos.BalanceRepo, rates)

	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.EntityRepo,
		WithBalanceCalculator(container.Balance),
		WithAccountTombstones(repos.TxManager, repos.TombstoneRepo),
	)
	container.Vat = NewVatService(repos.VatRepo, repos.AccountRepo)

	// Settlement is built before posting so posting can auto-assign receipts and payments.
	container.Assignment = NewAssignmentService(repos.TxManager, repos.TransactionRepo, repos.AssignmentRepo, repos.TombstoneRepo)
	container.Transaction = NewTransactionService(TransactionDeps{
		TxManager:    repos.TxManager,
		Transactions: repos.TransactionRepo,
		Ledger:       repos.LedgerRepo,
		Accounts:     repos.AccountRepo,
		Vats:         repos.VatRepo,
		Entities:     repos.EntityRepo,
		Periods:      container.Entity,
		Rates:        rates,
		Tombstones:   repos.TombstoneRepo,
		Sealer:       sealer,
		AutoAssigner: container.Assignment,
	})
	container.Ledger = NewLedgerService(repos.EntityRepo, repos.LedgerRepo, sealer, cfg.VerifyPageSize)

	return container, nil
}
