package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places ledger amounts are stored with.
const AmountScale = 4

// RoundAmount rounds an amount to the ledger's storage scale.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// CalculateSignedAmount returns the entry amount signed by side: DEBIT positive, CREDIT negative.
func CalculateSignedAmount(entry domain.LedgerEntry) (decimal.Decimal, error) {
	switch entry.EntryType {
	case domain.Debit:
		return entry.Amount, nil
	case domain.Credit:
		return entry.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown entry type '%s' encountered for ledger entry %s", entry.EntryType, entry.LedgerID)
	}
}

// ValidateEntriesBalance checks that a transaction's entries are mirrored pairs
// whose signed amounts cancel out for every post/folio account pair.
func ValidateEntriesBalance(entries []domain.LedgerEntry) error {
	if len(entries)%2 != 0 {
		return fmt.Errorf("ledger entries must come in mirrored pairs, got %d", len(entries))
	}

	sums := make(map[[2]string]decimal.Decimal)
	for _, entry := range entries {
		if entry.Amount.IsNegative() {
			return fmt.Errorf("ledger entry amount must not be negative for ledger entry %s", entry.LedgerID)
		}
		signed, err := CalculateSignedAmount(entry)
		if err != nil {
			return err
		}
		key := pairKey(entry.PostAccount, entry.FolioAccount)
		sums[key] = sums[key].Add(signed)
	}

	for key, sum := range sums {
		if !sum.IsZero() {
			return fmt.Errorf("ledger entries between %s and %s do not balance to zero: sum is %s", key[0], key[1], sum.String())
		}
	}
	return nil
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
