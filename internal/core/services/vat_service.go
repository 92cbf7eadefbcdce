package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

type vatService struct {
	BaseService
	vatRepo     portsrepo.VatRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewVatService creates a new VAT service.
func NewVatService(vatRepo portsrepo.VatRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.VatSvcFacade {
	return &vatService{vatRepo: vatRepo, accountRepo: accountRepo}
}

var _ portssvc.VatSvcFacade = (*vatService)(nil)

func (s *vatService) CreateVat(ctx context.Context, lctx domain.LedgerContext, req dto.CreateVatRequest) (*domain.Vat, error) {
	if req.Rate.IsNegative() {
		return nil, apperrors.NewLedgerError(apperrors.ErrNegativeAmount, "vat rate cannot be negative",
			apperrors.WithAmount(req.Rate))
	}
	hasAccount := req.AccountID != nil && *req.AccountID != ""
	if req.Rate.IsPositive() && !hasAccount {
		return nil, apperrors.NewLedgerError(apperrors.ErrMissingVatAccount, "a non-zero vat rate needs an account")
	}
	if hasAccount {
		account, err := s.accountRepo.FindAccountByID(ctx, lctx.EntityID, *req.AccountID)
		if err != nil {
			return nil, err
		}
		if account.AccountType != domain.Control {
			return nil, apperrors.NewLedgerError(apperrors.ErrInvalidAccountType, "vat account must be a CONTROL account",
				apperrors.WithAccount(account.AccountID))
		}
	}

	now := time.Now().UTC()
	vat := domain.Vat{
		VatID:     uuid.NewString(),
		EntityID:  lctx.EntityID,
		Name:      req.Name,
		Code:      req.Code,
		Rate:      req.Rate,
		AccountID: req.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     lctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: lctx.UserID,
		},
	}
	if err := s.vatRepo.SaveVat(ctx, vat); err != nil {
		s.LogError(ctx, err, "Failed to save vat", slog.String("code", req.Code))
		return nil, err
	}
	return &vat, nil
}

func (s *vatService) GetVat(ctx context.Context, lctx domain.LedgerContext, vatID string) (*domain.Vat, error) {
	return s.vatRepo.FindVatByID(ctx, lctx.EntityID, vatID)
}
