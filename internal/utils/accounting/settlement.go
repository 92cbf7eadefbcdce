package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateAssignment checks a proposed assignment of amount from assignable to cleared.
// Rules are checked in a fixed order and the first violation is returned.
func ValidateAssignment(assignable domain.Transaction, cleared domain.Clearable, amount decimal.Decimal, forexAccountID *string) error {
	txID := apperrors.WithTransaction(assignable.TransactionID)
	clID := apperrors.WithCleared(cleared.Ref.ID)

	if !assignable.TransactionType.IsAssignable() {
		return apperrors.NewLedgerError(apperrors.ErrUnassignableTransaction,
			fmt.Sprintf("%s transactions cannot be assigned, assignable types are %v", assignable.TransactionType, domain.Assignables), txID)
	}
	if !cleared.TransactionType.IsClearable() {
		return apperrors.NewLedgerError(apperrors.ErrUnclearableTransaction,
			fmt.Sprintf("%s transactions cannot be cleared, clearable types are %v", cleared.TransactionType, domain.Clearables), txID, clID)
	}
	if amount.IsNegative() {
		return apperrors.NewLedgerError(apperrors.ErrNegativeAmount, "assignment amount cannot be negative", txID, clID, apperrors.WithAmount(amount))
	}
	if cleared.Ref.Kind == domain.ClearedTransaction && cleared.Ref.ID == assignable.TransactionID {
		return apperrors.NewLedgerError(apperrors.ErrSelfClearance, "a transaction cannot clear itself", txID)
	}
	if !assignable.IsPosted || !cleared.IsPosted {
		return apperrors.NewLedgerError(apperrors.ErrUnpostedAssignment, "both transactions must be posted", txID, clID)
	}
	if cleared.AccountID != assignable.AccountID {
		return apperrors.NewLedgerError(apperrors.ErrInvalidClearanceAccount, "cleared item must share the assignable's account",
			txID, clID, apperrors.WithAccount(cleared.AccountID))
	}
	if cleared.CurrencyCode != assignable.CurrencyCode {
		return apperrors.NewLedgerError(apperrors.ErrInvalidClearanceCurrency,
			fmt.Sprintf("cleared currency %s differs from %s", cleared.CurrencyCode, assignable.CurrencyCode), txID, clID)
	}
	if cleared.IsCredited == assignable.IsCredited {
		return apperrors.NewLedgerError(apperrors.ErrInvalidClearanceEntry, "cleared item must have the opposite entry type", txID, clID)
	}
	if assignable.Balance().LessThan(amount) {
		return apperrors.NewLedgerError(apperrors.ErrInsufficientBalance,
			fmt.Sprintf("%s balance is not enough to clear %s", assignable.TransactionType, cleared.TransactionType),
			txID, clID, apperrors.WithAmounts(amount, assignable.Balance()))
	}
	if cleared.UnclearedAmount().LessThan(amount) {
		return apperrors.NewLedgerError(apperrors.ErrOverClearance,
			fmt.Sprintf("%s cannot be cleared beyond its uncleared amount", cleared.TransactionType),
			txID, clID, apperrors.WithAmounts(amount, cleared.UnclearedAmount()))
	}
	if !assignable.ExchangeRate.Equal(cleared.ExchangeRate) && (forexAccountID == nil || *forexAccountID == "") {
		return apperrors.NewLedgerError(apperrors.ErrMissingForexAccount, "exchange rates differ and no forex account was given", txID, clID)
	}
	if err := checkLineage(assignable, cleared); err != nil {
		return err
	}
	return nil
}

// checkLineage keeps one clearable settled by one assignable, and keeps
// assignables and clearables from switching roles. Opening balances are exempt
// from the clearable side of the rule.
func checkLineage(assignable domain.Transaction, cleared domain.Clearable) error {
	txID := apperrors.WithTransaction(assignable.TransactionID)
	clID := apperrors.WithCleared(cleared.Ref.ID)

	if !cleared.IsOpeningBalance() {
		if cleared.HasAssigned {
			return apperrors.NewLedgerError(apperrors.ErrMixedAssignment, "assigned transactions cannot be cleared", txID, clID)
		}
		for _, other := range cleared.ClearedBy {
			if other != assignable.TransactionID {
				return apperrors.NewLedgerError(apperrors.ErrMixedAssignment,
					"cleared item is already settled by another assignable "+other, txID, clID)
			}
		}
	}
	if assignable.ClearedAmount.IsPositive() {
		return apperrors.NewLedgerError(apperrors.ErrMixedAssignment, "cleared transactions cannot be assigned", txID, clID)
	}
	return nil
}

// PlannedAssignment is one allocation produced by PlanBulkAssignment.
type PlannedAssignment struct {
	Cleared domain.ClearedRef
	Amount  decimal.Decimal
}

// SortFIFO orders clearables oldest first, ties broken by id.
func SortFIFO(items []domain.Clearable) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].Ref.ID < items[j].Ref.ID
	})
}

// Outstanding filters candidates down to the items assignable may settle.
func Outstanding(assignable domain.Transaction, candidates []domain.Clearable) []domain.Clearable {
	out := make([]domain.Clearable, 0, len(candidates))
	for _, c := range candidates {
		if c.Ref.Kind == domain.ClearedTransaction && c.Ref.ID == assignable.TransactionID {
			continue
		}
		if !c.TransactionType.IsClearable() || !c.IsPosted {
			continue
		}
		if c.AccountID != assignable.AccountID || c.CurrencyCode != assignable.CurrencyCode {
			continue
		}
		if c.IsCredited == assignable.IsCredited || !c.UnclearedAmount().IsPositive() {
			continue
		}
		if checkLineage(domain.Transaction{TransactionID: assignable.TransactionID}, c) != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// PlanBulkAssignment allocates the assignable's balance across candidates FIFO.
// Items are cleared in full while the remaining balance exceeds their uncleared
// amount; the item that absorbs the rest of the balance ends the run.
// Every allocation is validated against the running state before it is accepted.
func PlanBulkAssignment(assignable domain.Transaction, candidates []domain.Clearable, forexAccountID *string) ([]PlannedAssignment, error) {
	items := Outstanding(assignable, candidates)
	SortFIFO(items)

	running := assignable
	plan := make([]PlannedAssignment, 0, len(items))
	for _, item := range items {
		remaining := running.Balance()
		if !remaining.IsPositive() {
			break
		}
		amount := item.UnclearedAmount()
		if remaining.LessThanOrEqual(amount) {
			amount = remaining
		}
		if err := ValidateAssignment(running, item, amount, forexAccountID); err != nil {
			return nil, err
		}
		plan = append(plan, PlannedAssignment{Cleared: item.Ref, Amount: amount})
		running.AssignedAmount = running.AssignedAmount.Add(amount)
	}
	return plan, nil
}
