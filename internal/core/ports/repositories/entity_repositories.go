package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// EntityReader defines read operations for entities and their reporting periods
type EntityReader interface {
	// FindEntityByID retrieves an entity. Returns apperrors.ErrNotFound when missing.
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)

	// FindReportingPeriod retrieves the period of an entity for a calendar year.
	FindReportingPeriod(ctx context.Context, entityID string, year int) (*domain.ReportingPeriod, error)
}

// EntityWriter defines write operations for entities and their reporting periods
type EntityWriter interface {
	SaveEntity(ctx context.Context, entity domain.Entity) error

	// SaveReportingPeriod inserts the period or updates its status.
	SaveReportingPeriod(ctx context.Context, period domain.ReportingPeriod) error
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}
