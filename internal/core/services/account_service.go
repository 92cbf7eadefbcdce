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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo   portsrepo.AccountRepositoryFacade
	entityRepo    portsrepo.EntityReader
	balanceCalc   portssvc.BalanceCalculatorSvc
	tombstoneRepo portsrepo.TombstoneWriter
	txManager     portsrepo.TransactionManager
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithBalanceCalculator adds the calculator used to guard deletes.
func WithBalanceCalculator(calc portssvc.BalanceCalculatorSvc) ServiceOption {
	return func(s *accountService) {
		s.balanceCalc = calc
	}
}

// WithAccountTombstones records a tombstone for every deleted account, in the
// same database transaction as the soft delete.
func WithAccountTombstones(txm portsrepo.TransactionManager, repo portsrepo.TombstoneWriter) ServiceOption {
	return func(s *accountService) {
		s.txManager = txm
		s.tombstoneRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, entityRepo portsrepo.EntityReader, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		entityRepo:  entityRepo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) checkAccountType(t domain.AccountType) error {
	if t == "" {
		return apperrors.NewLedgerError(apperrors.ErrMissingAccountType, "account type is required")
	}
	if !t.IsValid() {
		return apperrors.NewLedgerError(apperrors.ErrInvalidAccountType, string(t))
	}
	return nil
}

func (s *accountService) checkCategory(ctx context.Context, entityID string, categoryID *string, t domain.AccountType) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	category, err := s.accountRepo.FindCategoryByID(ctx, entityID, *categoryID)
	if err != nil {
		return err
	}
	if category.CategoryType != t {
		return apperrors.NewLedgerError(apperrors.ErrInvalidCategoryType,
			"category "+string(category.CategoryType)+" cannot hold "+string(t)+" accounts")
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, lctx domain.LedgerContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.checkAccountType(req.AccountType); err != nil {
		return nil, err
	}
	entity, err := s.entityRepo.FindEntityByID(ctx, lctx.EntityID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, lctx.EntityID, req.CategoryID, req.AccountType); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.CountAccountsByType(ctx, lctx.EntityID, req.AccountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts", slog.String("account_type", string(req.AccountType)))
		return nil, err
	}

	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = entity.ReportingCurrency
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		EntityID:     lctx.EntityID,
		Code:         domain.NextAccountCode(req.AccountType, existing),
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: currency,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     lctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: lctx.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("entity_id", lctx.EntityID),
			slog.String("account_name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.Int("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, lctx domain.LedgerContext, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, lctx.EntityID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, lctx domain.LedgerContext, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	return s.accountRepo.ListAccounts(ctx, lctx.EntityID, limit, params.Offset)
}

func (s *accountService) UpdateAccount(ctx context.Context, lctx domain.LedgerContext, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, lctx.EntityID, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountType != nil && *req.AccountType != account.AccountType {
		if err := s.checkAccountType(*req.AccountType); err != nil {
			return nil, err
		}
		used, err := s.accountRepo.HasLedgerEntries(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, apperrors.NewLedgerError(apperrors.ErrImmutableAccountType,
				"account type cannot change once the account has ledger entries",
				apperrors.WithAccount(accountID))
		}
		account.AccountType = *req.AccountType
	}
	if req.CategoryID != nil {
		account.CategoryID = req.CategoryID
	}
	if err := s.checkCategory(ctx, lctx.EntityID, account.CategoryID, account.AccountType); err != nil {
		return nil, err
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = lctx.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, lctx domain.LedgerContext, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, lctx.EntityID, accountID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if s.balanceCalc != nil {
		statement, err := s.balanceCalc.ClosingBalance(ctx, lctx, accountID, now)
		if err != nil {
			return err
		}
		if !statement.Closing.IsZero() {
			return apperrors.NewLedgerError(apperrors.ErrHangingTransactions,
				"account still carries a balance", apperrors.WithAccount(accountID),
				apperrors.WithAmount(statement.Closing))
		}
	}

	if s.tombstoneRepo == nil {
		if err := s.accountRepo.DeleteAccount(ctx, nil, lctx.EntityID, accountID, now); err != nil {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
			return err
		}
		return nil
	}

	err := s.InTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.accountRepo.DeleteAccount(ctx, tx, lctx.EntityID, accountID, now); err != nil {
			return err
		}
		return s.tombstoneRepo.InsertTombstone(ctx, tx, domain.Tombstone{
			TombstoneID:    uuid.NewString(),
			EntityID:       lctx.EntityID,
			RecyclableType: domain.RecyclableAccount,
			RecyclableID:   accountID,
			UserID:         lctx.UserID,
			DeletedAt:      now,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	return nil
}

func (s *accountService) CreateCategory(ctx context.Context, lctx domain.LedgerContext, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if !req.CategoryType.IsValid() {
		return nil, apperrors.NewLedgerError(apperrors.ErrInvalidCategoryType, string(req.CategoryType))
	}
	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		EntityID:     lctx.EntityID,
		Name:         req.Name,
		CategoryType: req.CategoryType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     lctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: lctx.UserID,
		},
	}
	if err := s.accountRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", req.Name))
		return nil, err
	}
	return &category, nil
}
