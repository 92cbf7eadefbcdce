package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AssignmentReader defines read operations for assignments and clearables
type AssignmentReader interface {
	FindAssignmentByID(ctx context.Context, entityID, assignmentID string) (*domain.Assignment, error)

	// FindClearableForUpdate resolves and row-locks the transaction or balance ref points at.
	FindClearableForUpdate(ctx context.Context, tx pgx.Tx, entityID string, ref domain.ClearedRef) (*domain.Clearable, error)

	// ListOutstandingClearables locks and returns posted transactions and opening
	// balances on account in currency with the given credit convention that still
	// have an uncleared amount.
	ListOutstandingClearables(ctx context.Context, tx pgx.Tx, entityID, accountID, currencyCode string, credited bool) ([]domain.Clearable, error)
}

// AssignmentWriter defines write operations for assignments
type AssignmentWriter interface {
	InsertAssignments(ctx context.Context, tx pgx.Tx, assignments []domain.Assignment) error
	SoftDeleteAssignment(ctx context.Context, tx pgx.Tx, entityID, assignmentID string, at time.Time) error
}

// AssignmentRepositoryFacade combines all assignment-related repository interfaces
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
