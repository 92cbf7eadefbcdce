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
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// assignmentService settles clearables. Every operation runs in one database
// transaction holding row locks on the assignable and the cleared items.
type assignmentService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	transactionRepo portsrepo.TransactionReader
	assignmentRepo  portsrepo.AssignmentRepositoryFacade
	tombstoneRepo   portsrepo.TombstoneWriter
}

// NewAssignmentService creates a new settlement service.
func NewAssignmentService(
	txManager portsrepo.TransactionManager,
	transactionRepo portsrepo.TransactionReader,
	assignmentRepo portsrepo.AssignmentRepositoryFacade,
	tombstoneRepo portsrepo.TombstoneWriter,
) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		assignmentRepo:  assignmentRepo,
		tombstoneRepo:   tombstoneRepo,
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) newAssignment(lctx domain.LedgerContext, transactionID string, cleared domain.ClearedRef, plan accounting.PlannedAssignment, forexAccountID *string, now time.Time) domain.Assignment {
	return domain.Assignment{
		AssignmentID:   uuid.NewString(),
		EntityID:       lctx.EntityID,
		TransactionID:  transactionID,
		Cleared:        cleared,
		Amount:         plan.Amount,
		ForexAccountID: forexAccountID,
		AssignmentDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     lctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: lctx.UserID,
		},
	}
}

func (s *assignmentService) BulkAssign(ctx context.Context, lctx domain.LedgerContext, transactionID string, forexAccountID *string) ([]domain.Assignment, error) {
	var written []domain.Assignment
	err := s.InTx(ctx, s.txManager, func(tx pgx.Tx) error {
		assignable, err := s.transactionRepo.FindTransactionForUpdate(ctx, tx, lctx.EntityID, transactionID)
		if err != nil {
			return err
		}
		if !assignable.TransactionType.IsAssignable() {
			return apperrors.NewLedgerError(apperrors.ErrUnassignableTransaction,
				string(assignable.TransactionType)+" transactions cannot be assigned",
				apperrors.WithTransaction(transactionID))
		}
		if !assignable.IsPosted {
			return apperrors.NewLedgerError(apperrors.ErrUnpostedAssignment, "assignable must be posted",
				apperrors.WithTransaction(transactionID))
		}

		candidates, err := s.assignmentRepo.ListOutstandingClearables(ctx, tx, lctx.EntityID,
			assignable.AccountID, assignable.CurrencyCode, !assignable.IsCredited)
		if err != nil {
			return err
		}
		plan, err := accounting.PlanBulkAssignment(*assignable, candidates, forexAccountID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		written = make([]domain.Assignment, 0, len(plan))
		for _, p := range plan {
			if !p.Amount.IsPositive() {
				continue
			}
			written = append(written, s.newAssignment(lctx, transactionID, p.Cleared, p, forexAccountID, now))
		}
		if len(written) == 0 {
			return nil
		}
		return s.assignmentRepo.InsertAssignments(ctx, tx, written)
	})
	if err != nil {
		s.LogError(ctx, err, "Bulk assign failed", slog.String("transaction_id", transactionID))
		return nil, err
	}
	s.LogInfo(ctx, "Bulk assign completed",
		slog.String("transaction_id", transactionID),
		slog.Int("assignments", len(written)))
	return written, nil
}

func (s *assignmentService) Assign(ctx context.Context, lctx domain.LedgerContext, req dto.CreateAssignmentRequest) (*domain.Assignment, error) {
	var written domain.Assignment
	err := s.InTx(ctx, s.txManager, func(tx pgx.Tx) error {
		assignable, err := s.transactionRepo.FindTransactionForUpdate(ctx, tx, lctx.EntityID, req.TransactionID)
		if err != nil {
			return err
		}
		ref := domain.ClearedRef{Kind: req.ClearedType, ID: req.ClearedID}
		cleared, err := s.assignmentRepo.FindClearableForUpdate(ctx, tx, lctx.EntityID, ref)
		if err != nil {
			return err
		}
		if err := accounting.ValidateAssignment(*assignable, *cleared, req.Amount, req.ForexAccountID); err != nil {
			return err
		}
		if req.Amount.IsZero() {
			return apperrors.NewValidationError("assignment amount must be greater than zero")
		}

		plan := accounting.PlannedAssignment{Cleared: ref, Amount: req.Amount}
		written = s.newAssignment(lctx, req.TransactionID, ref, plan, req.ForexAccountID, time.Now().UTC())
		return s.assignmentRepo.InsertAssignments(ctx, tx, []domain.Assignment{written})
	})
	if err != nil {
		s.LogError(ctx, err, "Assignment failed",
			slog.String("transaction_id", req.TransactionID),
			slog.String("cleared_id", req.ClearedID))
		return nil, err
	}
	return &written, nil
}

func (s *assignmentService) DeleteAssignment(ctx context.Context, lctx domain.LedgerContext, assignmentID string) error {
	return s.InTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if _, err := s.assignmentRepo.FindAssignmentByID(ctx, lctx.EntityID, assignmentID); err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := s.assignmentRepo.SoftDeleteAssignment(ctx, tx, lctx.EntityID, assignmentID, now); err != nil {
			return err
		}
		return s.tombstoneRepo.InsertTombstone(ctx, tx, domain.Tombstone{
			TombstoneID:    uuid.NewString(),
			EntityID:       lctx.EntityID,
			RecyclableType: domain.RecyclableAssignment,
			RecyclableID:   assignmentID,
			UserID:         lctx.UserID,
			DeletedAt:      now,
		})
	})
}
