package accounting

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TaxAmount is the VAT portion of a unit amount at rate percent.
// For inclusive amounts the tax is carved out of the amount, otherwise it is added on top.
func TaxAmount(amount, rate decimal.Decimal, inclusive bool) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	if inclusive {
		return amount.Sub(amount.Div(decimal.NewFromInt(1).Add(rate.Div(hundred))))
	}
	return amount.Mul(rate).Div(hundred)
}

// ValidateLineItem checks a line item against its transaction before posting.
func ValidateLineItem(txn domain.Transaction, li domain.LineItem) error {
	if li.Amount.IsNegative() {
		return apperrors.NewLedgerError(apperrors.ErrNegativeAmount, "line item amount cannot be negative",
			apperrors.WithTransaction(txn.TransactionID), apperrors.WithAmount(li.Amount))
	}
	if li.Quantity.IsNegative() {
		return apperrors.NewLedgerError(apperrors.ErrNegativeAmount, "line item quantity cannot be negative",
			apperrors.WithTransaction(txn.TransactionID), apperrors.WithAmount(li.Quantity))
	}
	if li.AccountID == txn.AccountID {
		return apperrors.NewLedgerError(apperrors.ErrRedundantTransaction,
			"a transaction main account cannot be one of the line item accounts",
			apperrors.WithTransaction(txn.TransactionID), apperrors.WithAccount(li.AccountID))
	}
	if li.VatRate().IsPositive() && li.VatPostingAccount() == "" {
		return apperrors.NewLedgerError(apperrors.ErrMissingVatAccount, "line item vat has no account to post to",
			apperrors.WithTransaction(txn.TransactionID))
	}
	return nil
}

// ExpandTransaction turns a transaction's line items into mirrored ledger entry pairs.
// Each line yields a main pair and, when its VAT rate is non-zero, a VAT pair.
// Amounts are converted with the transaction's snapshot exchange rate.
// The returned amount is the line total excluding VAT, in transaction currency.
// Entries are returned unsealed: sequence and hash are assigned at write time.
func ExpandTransaction(txn domain.Transaction, createdAt time.Time) ([]domain.LedgerEntry, decimal.Decimal, error) {
	if len(txn.LineItems) == 0 {
		return nil, decimal.Zero, apperrors.NewValidationError("transaction %s has no line items", txn.TransactionID)
	}
	rate := txn.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}

	postType := domain.Debit
	if txn.IsCredited {
		postType = domain.Credit
	}

	entries := make([]domain.LedgerEntry, 0, len(txn.LineItems)*4)
	total := decimal.Zero
	for _, li := range txn.LineItems {
		if err := ValidateLineItem(txn, li); err != nil {
			return nil, decimal.Zero, err
		}

		amount := RoundAmount(li.Amount.Mul(rate).Mul(li.Quantity))
		entries = append(entries, mirroredPair(txn, li, txn.AccountID, li.AccountID, postType, amount, createdAt)...)
		total = total.Add(li.Amount.Mul(li.Quantity))

		vatRate := li.VatRate()
		if vatRate.IsZero() {
			continue
		}
		tax := TaxAmount(li.Amount, vatRate, li.VatInclusive)
		taxAmount := RoundAmount(tax.Mul(rate).Mul(li.Quantity))
		// inclusive lines re-split the tax out of the line account, exclusive lines charge the main account
		vatPost := txn.AccountID
		if li.VatInclusive {
			vatPost = li.AccountID
		}
		entries = append(entries, mirroredPair(txn, li, vatPost, li.VatPostingAccount(), postType, taxAmount, createdAt)...)
	}
	return entries, total, nil
}

func mirroredPair(txn domain.Transaction, li domain.LineItem, post, folio string, postType domain.EntryType, amount decimal.Decimal, createdAt time.Time) []domain.LedgerEntry {
	base := domain.LedgerEntry{
		EntityID:      txn.EntityID,
		TransactionID: txn.TransactionID,
		LineItemID:    li.LineItemID,
		VatID:         li.VatID,
		Amount:        amount,
		PostingDate:   txn.TransactionDate,
		CreatedAt:     createdAt,
	}

	postEntry := base
	postEntry.LedgerID = uuid.NewString()
	postEntry.PostAccount = post
	postEntry.FolioAccount = folio
	postEntry.EntryType = postType

	folioEntry := base
	folioEntry.LedgerID = uuid.NewString()
	folioEntry.PostAccount = folio
	folioEntry.FolioAccount = post
	folioEntry.EntryType = postType.Opposite()

	return []domain.LedgerEntry{postEntry, folioEntry}
}
