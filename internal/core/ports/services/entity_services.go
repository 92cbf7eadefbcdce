package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// EntitySvcFacade manages reporting entities and their periods.
type EntitySvcFacade interface {
	CreateEntity(ctx context.Context, req dto.CreateEntityRequest, userID string) (*domain.Entity, error)
	GetEntity(ctx context.Context, entityID string) (*domain.Entity, error)

	// GetReportingPeriod returns the stored period, or an OPEN one when none was recorded.
	GetReportingPeriod(ctx context.Context, entityID string, year int) (*domain.ReportingPeriod, error)

	ClosePeriod(ctx context.Context, lctx domain.LedgerContext, year int) (*domain.ReportingPeriod, error)
}
