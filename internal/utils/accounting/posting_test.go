package accounting

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func invoiceWithLine(li domain.LineItem) domain.Transaction {
	return domain.Transaction{
		TransactionID:   "txn-1",
		EntityID:        "entity-1",
		TransactionType: domain.ClientInvoice,
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		AccountID:       "receivable",
		CurrencyCode:    "USD",
		ExchangeRate:    decimal.NewFromInt(1),
		IsCredited:      false,
		LineItems:       []domain.LineItem{li},
	}
}

func findEntry(t *testing.T, entries []domain.LedgerEntry, post, folio string) domain.LedgerEntry {
	t.Helper()
	for _, e := range entries {
		if e.PostAccount == post && e.FolioAccount == folio {
			return e
		}
	}
	t.Fatalf("no entry posting %s against %s", post, folio)
	return domain.LedgerEntry{}
}

func TestTaxAmount(t *testing.T) {
	assert.Equal(t, "16", TaxAmount(dec("100"), dec("16"), false).String())
	assert.Equal(t, "16", TaxAmount(dec("116"), dec("16"), true).Round(8).String())
	assert.True(t, TaxAmount(dec("100"), decimal.Zero, true).IsZero())
}

func TestExpandTransaction_VatExclusiveSplit(t *testing.T) {
	vat := &domain.Vat{VatID: "vat-16", Rate: dec("16"), AccountID: strPtr("vat-control")}
	txn := invoiceWithLine(domain.LineItem{
		LineItemID: "li-1", AccountID: "revenue", Amount: dec("100"), Quantity: dec("1"),
		VatID: strPtr("vat-16"), Vat: vat,
	})

	entries, total, err := ExpandTransaction(txn, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "100", total.String())

	main := findEntry(t, entries, "receivable", "revenue")
	assert.Equal(t, domain.Debit, main.EntryType)
	assert.Equal(t, "100", main.Amount.String())
	mirror := findEntry(t, entries, "revenue", "receivable")
	assert.Equal(t, domain.Credit, mirror.EntryType)

	tax := findEntry(t, entries, "receivable", "vat-control")
	assert.Equal(t, domain.Debit, tax.EntryType)
	assert.Equal(t, "16", tax.Amount.String())
	taxMirror := findEntry(t, entries, "vat-control", "receivable")
	assert.Equal(t, domain.Credit, taxMirror.EntryType)

	assert.NoError(t, ValidateEntriesBalance(entries))
	assert.Equal(t, "116", Balance(entries, "receivable").String())
	assert.Equal(t, "-16", Balance(entries, "vat-control").String())
}

func TestExpandTransaction_VatInclusiveUsesLineAccount(t *testing.T) {
	vat := &domain.Vat{VatID: "vat-16", Rate: dec("16"), AccountID: strPtr("vat-control")}
	txn := invoiceWithLine(domain.LineItem{
		LineItemID: "li-1", AccountID: "revenue", Amount: dec("116"), Quantity: dec("1"),
		VatID: strPtr("vat-16"), Vat: vat, VatInclusive: true,
	})
	txn.IsCredited = true

	entries, _, err := ExpandTransaction(txn, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	main := findEntry(t, entries, "receivable", "revenue")
	assert.Equal(t, domain.Credit, main.EntryType)
	assert.Equal(t, "116", main.Amount.String())

	tax := findEntry(t, entries, "revenue", "vat-control")
	assert.Equal(t, domain.Credit, tax.EntryType)
	assert.Equal(t, "16", tax.Amount.String())
	assert.NoError(t, ValidateEntriesBalance(entries))
}

func TestExpandTransaction_ExchangeRateAndQuantity(t *testing.T) {
	txn := invoiceWithLine(domain.LineItem{LineItemID: "li-1", AccountID: "revenue", Amount: dec("50"), Quantity: dec("3")})
	txn.ExchangeRate = dec("1.5")

	entries, total, err := ExpandTransaction(txn, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "225", entries[0].Amount.String())
	assert.Equal(t, "150", total.String())
}

func TestExpandTransaction_SecondaryVatAccount(t *testing.T) {
	vat := &domain.Vat{VatID: "vat-16", Rate: dec("16"), AccountID: strPtr("vat-control")}
	txn := invoiceWithLine(domain.LineItem{
		LineItemID: "li-1", AccountID: "revenue", Amount: dec("100"), Quantity: dec("1"),
		VatID: strPtr("vat-16"), Vat: vat, VatAccountID: strPtr("vat-withheld"),
	})
	entries, _, err := ExpandTransaction(txn, time.Now().UTC())
	require.NoError(t, err)
	findEntry(t, entries, "receivable", "vat-withheld")
}

func TestExpandTransaction_Failures(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		want error
	}{
		{
			name: "negative amount",
			txn:  invoiceWithLine(domain.LineItem{AccountID: "revenue", Amount: dec("-1"), Quantity: dec("1")}),
			want: apperrors.ErrNegativeAmount,
		},
		{
			name: "line posts to main account",
			txn:  invoiceWithLine(domain.LineItem{AccountID: "receivable", Amount: dec("10"), Quantity: dec("1")}),
			want: apperrors.ErrRedundantTransaction,
		},
		{
			name: "vat without account",
			txn: invoiceWithLine(domain.LineItem{AccountID: "revenue", Amount: dec("10"), Quantity: dec("1"),
				Vat: &domain.Vat{Rate: dec("16")}}),
			want: apperrors.ErrMissingVatAccount,
		},
		{
			name: "no line items",
			txn:  domain.Transaction{TransactionID: "empty"},
			want: apperrors.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ExpandTransaction(tt.txn, time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestValidateEntriesBalance_Unbalanced(t *testing.T) {
	entries := []domain.LedgerEntry{
		{PostAccount: "a", FolioAccount: "b", EntryType: domain.Debit, Amount: dec("10")},
		{PostAccount: "b", FolioAccount: "a", EntryType: domain.Credit, Amount: dec("9")},
	}
	assert.Error(t, ValidateEntriesBalance(entries))
	assert.Error(t, ValidateEntriesBalance(entries[:1]))
}
