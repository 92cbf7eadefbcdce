package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// VatSvcFacade manages VAT definitions.
type VatSvcFacade interface {
	CreateVat(ctx context.Context, lctx domain.LedgerContext, req dto.CreateVatRequest) (*domain.Vat, error)
	GetVat(ctx context.Context, lctx domain.LedgerContext, vatID string) (*domain.Vat, error)
}
