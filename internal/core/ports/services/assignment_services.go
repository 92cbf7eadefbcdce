package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AssignmentSvcFacade settles clearables against assignable transactions.
type AssignmentSvcFacade interface {
	// BulkAssign clears outstanding items on the transaction's account oldest first.
	BulkAssign(ctx context.Context, lctx domain.LedgerContext, transactionID string, forexAccountID *string) ([]domain.Assignment, error)

	// Assign validates and records one explicit assignment.
	Assign(ctx context.Context, lctx domain.LedgerContext, req dto.CreateAssignmentRequest) (*domain.Assignment, error)

	// DeleteAssignment reverses a settlement, leaving a tombstone.
	DeleteAssignment(ctx context.Context, lctx domain.LedgerContext, assignmentID string) error
}
