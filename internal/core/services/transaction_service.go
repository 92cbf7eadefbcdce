package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/internal/utils/hashchain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionDeps groups the collaborators of the transaction service.
type TransactionDeps struct {
	TxManager    portsrepo.TransactionManager
	Transactions portsrepo.TransactionRepositoryFacade
	Ledger       portsrepo.LedgerRepositoryFacade
	Accounts     portsrepo.AccountReader
	Vats         portsrepo.VatRepositoryFacade
	Entities     portsrepo.EntityReader
	Periods      portssvc.EntitySvcFacade
	Rates        portssvc.ExchangeRateResolver
	Tombstones   portsrepo.TombstoneWriter
	Sealer       *hashchain.Sealer
	AutoAssigner portssvc.AssignmentSvcFacade
	Clock        func() time.Time
}

// transactionService authors transactions and posts them into the hash-chained ledger.
type transactionService struct {
	BaseService
	TransactionDeps
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(deps TransactionDeps) portssvc.TransactionSvcFacade {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &transactionService{TransactionDeps: deps}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) now() time.Time {
	return s.Clock().UTC()
}

func (s *transactionService) GetTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string) (*domain.Transaction, error) {
	return s.Transactions.FindTransactionByID(ctx, lctx.EntityID, transactionID)
}

func (s *transactionService) CreateTransaction(ctx context.Context, lctx domain.LedgerContext, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.TransactionType.IsValid() {
		return nil, apperrors.NewValidationError("unknown transaction type %q", req.TransactionType)
	}
	account, err := s.Accounts.FindAccountByID(ctx, lctx.EntityID, req.AccountID)
	if err != nil {
		return nil, err
	}

	credited := req.TransactionType.DefaultCredited()
	if req.IsCredited != nil {
		if req.TransactionType != domain.JournalEntry {
			return nil, apperrors.NewValidationError("isCredited may only be set on journal entries")
		}
		credited = *req.IsCredited
	}
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = account.CurrencyCode
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		EntityID:        lctx.EntityID,
		TransactionNo:   req.TransactionNo,
		TransactionType: req.TransactionType,
		TransactionDate: req.TransactionDate.UTC(),
		Reference:       req.Reference,
		Narration:       req.Narration,
		AccountID:       req.AccountID,
		CurrencyCode:    currency,
		ExchangeRate:    decimal.NewFromInt(1),
		IsCredited:      credited,
		AssignedAmount:  decimal.Zero,
		ClearedAmount:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     lctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: lctx.UserID,
		},
	}

	for _, liReq := range req.LineItems {
		li, err := s.buildLineItem(ctx, lctx, txn, uuid.NewString(), liReq, now)
		if err != nil {
			return nil, err
		}
		txn.LineItems = append(txn.LineItems, *li)
	}
	txn.Amount = txn.LineItemTotal()

	if err := s.Transactions.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("entity_id", lctx.EntityID),
			slog.String("transaction_type", string(txn.TransactionType)))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("line_items", len(txn.LineItems)))
	return &txn, nil
}

// buildLineItem resolves the line's VAT and validates it against the owning transaction.
func (s *transactionService) buildLineItem(ctx context.Context, lctx domain.LedgerContext, txn domain.Transaction, lineItemID string, req dto.LineItemRequest, now time.Time) (*domain.LineItem, error) {
	if _, err := s.Accounts.FindAccountByID(ctx, lctx.EntityID, req.AccountID); err != nil {
		return nil, err
	}
	quantity := decimal.NewFromInt(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	li := domain.LineItem{
		LineItemID:    lineItemID,
		TransactionID: txn.TransactionID,
		AccountID:     req.AccountID,
		Narration:     req.Narration,
		Quantity:      quantity,
		Amount:        req.Amount,
		VatID:         req.VatID,
		VatInclusive:  req.VatInclusive,
		VatAccountID:  req.VatAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     lctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: lctx.UserID,
		},
	}
	if req.VatID != nil && *req.VatID != "" {
		vat, err := s.Vats.FindVatByID(ctx, lctx.EntityID, *req.VatID)
		if err != nil {
			return nil, err
		}
		li.Vat = vat
	}
	if req.VatAccountID != nil && *req.VatAccountID != "" {
		if _, err := s.Accounts.FindAccountByID(ctx, lctx.EntityID, *req.VatAccountID); err != nil {
			return nil, err
		}
	}
	if err := accounting.ValidateLineItem(txn, li); err != nil {
		return nil, err
	}
	return &li, nil
}

// ensureUnposted blocks mutation of a transaction that has ledger entries.
// txn must have been locked inside tx so a concurrent post cannot interleave.
func (s *transactionService) ensureUnposted(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	if !txn.IsPosted {
		count, err := s.Ledger.CountTransactionEntries(ctx, tx, txn.TransactionID)
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
	}
	return apperrors.NewLedgerError(apperrors.ErrPostedTransaction, "line items cannot change after posting",
		apperrors.WithTransaction(txn.TransactionID))
}

func (s *transactionService) AddLineItem(ctx context.Context, lctx domain.LedgerContext, transactionID string, req dto.LineItemRequest) (*domain.LineItem, error) {
	var li *domain.LineItem
	err := s.InTx(ctx, s.TxManager, func(tx pgx.Tx) error {
		txn, err := s.Transactions.FindTransactionForUpdate(ctx, tx, lctx.EntityID, transactionID)
		if err != nil {
			return err
		}
		if err := s.ensureUnposted(ctx, tx, txn); err != nil {
			return err
		}
		li, err = s.buildLineItem(ctx, lctx, *txn, uuid.NewString(), req, s.now())
		if err != nil {
			return err
		}
		return s.Transactions.SaveLineItem(ctx, tx, *li)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save line item", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return li, nil
}

func (s *transactionService) UpdateLineItem(ctx context.Context, lctx domain.LedgerContext, transactionID, lineItemID string, req dto.LineItemRequest) (*domain.LineItem, error) {
	var li *domain.LineItem
	err := s.InTx(ctx, s.TxManager, func(tx pgx.Tx) error {
		txn, err := s.Transactions.FindTransactionForUpdate(ctx, tx, lctx.EntityID, transactionID)
		if err != nil {
			return err
		}
		existing, err := s.Transactions.FindLineItemByID(ctx, transactionID, lineItemID)
		if err != nil {
			return err
		}
		if err := s.ensureUnposted(ctx, tx, txn); err != nil {
			return err
		}
		li, err = s.buildLineItem(ctx, lctx, *txn, existing.LineItemID, req, s.now())
		if err != nil {
			return err
		}
		li.CreatedAt = existing.CreatedAt
		li.CreatedBy = existing.CreatedBy
		return s.Transactions.UpdateLineItem(ctx, tx, *li)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update line item",
			slog.String("transaction_id", transactionID), slog.String("line_item_id", lineItemID))
		return nil, err
	}
	return li, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string) error {
	return s.InTx(ctx, s.TxManager, func(tx pgx.Tx) error {
		txn, err := s.Transactions.FindTransactionForUpdate(ctx, tx, lctx.EntityID, transactionID)
		if err != nil {
			return err
		}
		if err := s.ensureUnposted(ctx, tx, txn); err != nil {
			return err
		}
		now := s.now()
		if err := s.Transactions.DeleteTransaction(ctx, tx, lctx.EntityID, transactionID, now); err != nil {
			return err
		}
		return s.Tombstones.InsertTombstone(ctx, tx, domain.Tombstone{
			TombstoneID:    uuid.NewString(),
			EntityID:       lctx.EntityID,
			RecyclableType: domain.RecyclableTransaction,
			RecyclableID:   transactionID,
			UserID:         lctx.UserID,
			DeletedAt:      now,
		})
	})
}

func (s *transactionService) PostTransaction(ctx context.Context, lctx domain.LedgerContext, transactionID string, req dto.PostTransactionRequest) (*domain.Transaction, error) {
	var posted *domain.Transaction
	err := s.InTx(ctx, s.TxManager, func(tx pgx.Tx) error {
		txn, err := s.Transactions.FindTransactionForUpdate(ctx, tx, lctx.EntityID, transactionID)
		if err != nil {
			return err
		}
		if err := s.checkPeriodOpen(ctx, lctx, *txn); err != nil {
			return err
		}

		rate, err := s.Rates.Rate(ctx, lctx.EntityID, txn.CurrencyCode, txn.TransactionDate)
		if err != nil {
			return err
		}
		txn.ExchangeRate = rate

		now := s.now()
		entries, total, err := accounting.ExpandTransaction(*txn, now)
		if err != nil {
			return err
		}
		if err := accounting.ValidateEntriesBalance(entries); err != nil {
			return err
		}

		if err := s.Ledger.LockChain(ctx, tx, lctx.EntityID); err != nil {
			return err
		}
		tail, err := s.Ledger.FindChainTail(ctx, tx, lctx.EntityID)
		if err != nil {
			return err
		}
		superseded, err := s.Ledger.SupersedeTransactionEntries(ctx, tx, transactionID, now)
		if err != nil {
			return err
		}
		s.Sealer.Seal(tail, entries)
		if err := s.Ledger.InsertEntries(ctx, tx, entries); err != nil {
			return err
		}
		if err := s.Transactions.MarkPosted(ctx, tx, transactionID, total, rate, lctx.UserID, now); err != nil {
			return err
		}

		txn.Amount = total
		txn.IsPosted = true
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = lctx.UserID
		posted = txn

		s.LogInfo(ctx, "Transaction posted",
			slog.String("transaction_id", transactionID),
			slog.Int("entries", len(entries)),
			slog.Int64("superseded", superseded),
			slog.String("amount", total.String()))
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	if req.AutoAssign && s.AutoAssigner != nil && isPaymentType(posted.TransactionType) {
		if _, err := s.AutoAssigner.BulkAssign(ctx, lctx, transactionID, req.ForexAccountID); err != nil {
			s.LogError(ctx, err, "Auto-assign after posting failed", slog.String("transaction_id", transactionID))
			return posted, fmt.Errorf("transaction posted, auto-assign failed: %w", err)
		}
		return s.Transactions.FindTransactionByID(ctx, lctx.EntityID, transactionID)
	}
	return posted, nil
}

func (s *transactionService) checkPeriodOpen(ctx context.Context, lctx domain.LedgerContext, txn domain.Transaction) error {
	entity, err := s.Entities.FindEntityByID(ctx, lctx.EntityID)
	if err != nil {
		return err
	}
	year := entity.Year(txn.TransactionDate)
	period, err := s.Periods.GetReportingPeriod(ctx, lctx.EntityID, year)
	if err != nil {
		return err
	}
	if period.IsClosed() {
		return apperrors.NewLedgerError(apperrors.ErrClosedReportingPeriod,
			fmt.Sprintf("reporting period %d is closed", year), apperrors.WithTransaction(txn.TransactionID))
	}
	return nil
}

// isPaymentType reports whether posting t may settle clearables automatically.
func isPaymentType(t domain.TransactionType) bool {
	return t == domain.ClientReceipt || t == domain.SupplierPayment
}
