package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// LedgerSvcFacade exposes ledger integrity checks.
type LedgerSvcFacade interface {
	// VerifyChain rescans the entity's chain and reports the first divergent entry.
	// A broken chain is a result, not an error.
	VerifyChain(ctx context.Context, entityID string) (*domain.ChainVerification, error)
}
