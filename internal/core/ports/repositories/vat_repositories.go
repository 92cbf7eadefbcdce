package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// VatRepositoryFacade defines persistence for VAT definitions
type VatRepositoryFacade interface {
	SaveVat(ctx context.Context, vat domain.Vat) error
	FindVatByID(ctx context.Context, entityID, vatID string) (*domain.Vat, error)
}
