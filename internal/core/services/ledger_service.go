package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/hashchain"
)

const defaultVerifyPageSize = 1000

type ledgerService struct {
	BaseService
	entityRepo portsrepo.EntityReader
	ledgerRepo portsrepo.LedgerReader
	sealer     *hashchain.Sealer
	pageSize   int
}

// NewLedgerService creates the chain verification service. pageSize bounds how
// many entries are held in memory at once.
func NewLedgerService(entityRepo portsrepo.EntityReader, ledgerRepo portsrepo.LedgerReader, sealer *hashchain.Sealer, pageSize int) portssvc.LedgerSvcFacade {
	if pageSize <= 0 {
		pageSize = defaultVerifyPageSize
	}
	return &ledgerService{
		entityRepo: entityRepo,
		ledgerRepo: ledgerRepo,
		sealer:     sealer,
		pageSize:   pageSize,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) VerifyChain(ctx context.Context, entityID string) (*domain.ChainVerification, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, err
	}

	verifier := s.sealer.NewVerifier()
	for !verifier.Broken() {
		page, err := s.ledgerRepo.ListChainPage(ctx, entityID, verifier.LastSequence(), s.pageSize)
		if err != nil {
			s.LogError(ctx, err, "Failed to read ledger chain", slog.String("entity_id", entityID))
			return nil, err
		}
		for _, entry := range page {
			if verifier.Next(entry) != nil {
				break
			}
		}
		if len(page) < s.pageSize {
			break
		}
	}

	result := verifier.Result(entityID)
	if !result.Valid {
		s.GetLogger(ctx).Warn("Ledger chain verification failed",
			slog.String("entity_id", entityID),
			slog.Int64("sequence", result.Break.Sequence),
			slog.String("reason", result.Break.Reason))
	} else {
		s.LogInfo(ctx, "Ledger chain verified",
			slog.String("entity_id", entityID),
			slog.Int64("entries", result.EntriesVerified),
			slog.String("algorithm", string(s.sealer.Algorithm())))
	}
	return &result, nil
}
