package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// balanceService aggregates live ledger entries and opening balance records.
// It never writes computed balances back onto accounts.
type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	entityRepo  portsrepo.EntityReader
	ledgerRepo  portsrepo.LedgerReader
	balanceRepo portsrepo.BalanceRepositoryFacade
	rates       portssvc.ExchangeRateResolver
}

// NewBalanceService creates a new balance service.
func NewBalanceService(
	accountRepo portsrepo.AccountReader,
	entityRepo portsrepo.EntityReader,
	ledgerRepo portsrepo.LedgerReader,
	balanceRepo portsrepo.BalanceRepositoryFacade,
	rates portssvc.ExchangeRateResolver,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo: accountRepo,
		entityRepo:  entityRepo,
		ledgerRepo:  ledgerRepo,
		balanceRepo: balanceRepo,
		rates:       rates,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) Balance(ctx context.Context, lctx domain.LedgerContext, accountID string, start, end time.Time) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, lctx.EntityID, accountID); err != nil {
		return decimal.Zero, err
	}
	if end.Before(start) {
		return decimal.Zero, apperrors.NewValidationError("balance end date precedes start date")
	}
	return s.ledgerRepo.SumBalance(ctx, accountID, accounting.StartOfDay(start), accounting.EndOfDay(end))
}

func (s *balanceService) Contribution(ctx context.Context, lctx domain.LedgerContext, accountID, transactionID string) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, lctx.EntityID, accountID); err != nil {
		return decimal.Zero, err
	}
	entries, err := s.ledgerRepo.ListTransactionEntries(ctx, transactionID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.Contribution(entries, accountID, transactionID), nil
}

func (s *balanceService) OpeningBalance(ctx context.Context, lctx domain.LedgerContext, accountID string, year int) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, lctx.EntityID, accountID); err != nil {
		return decimal.Zero, err
	}
	records, err := s.balanceRepo.FindBalancesByAccountYear(ctx, accountID, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load opening balances",
			slog.String("account_id", accountID), slog.Int("year", year))
		return decimal.Zero, err
	}
	return accounting.OpeningBalance(records), nil
}

func (s *balanceService) ClosingBalance(ctx context.Context, lctx domain.LedgerContext, accountID string, endDate time.Time) (accounting.AccountStatement, error) {
	entity, err := s.entityRepo.FindEntityByID(ctx, lctx.EntityID)
	if err != nil {
		return accounting.AccountStatement{}, err
	}
	year := entity.Year(endDate)
	periodStart := entity.PeriodStart(endDate)
	end := accounting.EndOfDay(endDate)

	opening, err := s.OpeningBalance(ctx, lctx, accountID, year)
	if err != nil {
		return accounting.AccountStatement{}, err
	}
	movement, err := s.ledgerRepo.SumBalance(ctx, accountID, periodStart, end)
	if err != nil {
		return accounting.AccountStatement{}, err
	}
	return accounting.NewAccountStatement(accountID, year, periodStart, end, opening, movement), nil
}

func (s *balanceService) CreateOpeningBalance(ctx context.Context, lctx domain.LedgerContext, req dto.CreateBalanceRequest) (*domain.Balance, error) {
	if req.Amount.IsNegative() {
		return nil, apperrors.NewLedgerError(apperrors.ErrNegativeAmount, "opening balance amount",
			apperrors.WithAccount(req.AccountID), apperrors.WithAmount(req.Amount))
	}
	if !containsBalanceType(req.TransactionType) {
		return nil, apperrors.NewValidationError("opening balances cannot carry transaction type %s", req.TransactionType)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, lctx.EntityID, req.AccountID)
	if err != nil {
		return nil, err
	}
	entity, err := s.entityRepo.FindEntityByID(ctx, lctx.EntityID)
	if err != nil {
		return nil, err
	}
	if !req.TransactionDate.Before(entity.YearStartDate(req.Year)) {
		return nil, apperrors.NewLedgerError(apperrors.ErrInvalidBalanceDate,
			"transaction date must precede the start of the reporting year",
			apperrors.WithAccount(req.AccountID))
	}

	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = account.CurrencyCode
	}
	var rate decimal.Decimal
	if req.ExchangeRate != nil {
		rate = req.ExchangeRate.Abs()
	} else {
		rate, err = s.rates.Rate(ctx, lctx.EntityID, currency, req.TransactionDate)
		if err != nil {
			return nil, err
		}
	}
	if rate.IsZero() {
		return nil, apperrors.NewValidationError("exchange rate must be non-zero")
	}

	now := time.Now().UTC()
	balance := domain.Balance{
		BalanceID:       uuid.NewString(),
		EntityID:        lctx.EntityID,
		AccountID:       req.AccountID,
		CurrencyCode:    currency,
		Year:            req.Year,
		TransactionType: req.TransactionType,
		TransactionNo:   req.TransactionNo,
		TransactionDate: req.TransactionDate.UTC(),
		Reference:       req.Reference,
		BalanceType:     req.BalanceType,
		Amount:          req.Amount,
		ExchangeRate:    rate,
		ClearedAmount:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     lctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: lctx.UserID,
		},
	}
	if err := s.balanceRepo.SaveBalance(ctx, balance); err != nil {
		s.LogError(ctx, err, "Failed to save opening balance", slog.String("account_id", req.AccountID))
		return nil, err
	}
	return &balance, nil
}

func (s *balanceService) ListAccountEntries(ctx context.Context, lctx domain.LedgerContext, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, lctx.EntityID, accountID); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, next, err := s.ledgerRepo.ListEntriesByAccount(ctx, lctx.EntityID, accountID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return &dto.ListEntriesResponse{Entries: entries, NextToken: next}, nil
}

func containsBalanceType(t domain.TransactionType) bool {
	for _, candidate := range domain.BalanceTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}
