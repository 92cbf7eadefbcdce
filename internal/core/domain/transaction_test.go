package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string {
	return &s
}

func TestTransaction_BalanceAndUncleared(t *testing.T) {
	txn := domain.Transaction{
		Amount:         decimal.NewFromInt(100),
		AssignedAmount: decimal.NewFromInt(30),
		ClearedAmount:  decimal.NewFromInt(45),
	}
	assert.True(t, decimal.NewFromInt(70).Equal(txn.Balance()))
	assert.True(t, decimal.NewFromInt(55).Equal(txn.UnclearedAmount()))
}

func TestTransaction_LineItemTotal(t *testing.T) {
	txn := domain.Transaction{
		LineItems: []domain.LineItem{
			{Amount: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(2)},
			{Amount: decimal.RequireFromString("12.5"), Quantity: decimal.NewFromInt(1)},
		},
	}
	assert.Equal(t, "212.5", txn.LineItemTotal().String())
}

func TestTransactionType_Classification(t *testing.T) {
	tests := []struct {
		name       string
		txType     domain.TransactionType
		assignable bool
		clearable  bool
		credited   bool
	}{
		{"receipt", domain.ClientReceipt, true, false, true},
		{"payment", domain.SupplierPayment, true, false, false},
		{"invoice", domain.ClientInvoice, false, true, false},
		{"bill", domain.SupplierBill, false, true, true},
		{"journal", domain.JournalEntry, true, true, false},
		{"cash sale", domain.CashSale, false, false, false},
		{"bill credit", domain.SupplierBillCredit, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.txType.IsValid())
			assert.Equal(t, tt.assignable, tt.txType.IsAssignable())
			assert.Equal(t, tt.clearable, tt.txType.IsClearable())
			assert.Equal(t, tt.credited, tt.txType.DefaultCredited())
		})
	}
	assert.False(t, domain.TransactionType("XX").IsValid())
}

func TestLineItem_VatPostingAccount(t *testing.T) {
	vat := &domain.Vat{Rate: decimal.NewFromInt(16), AccountID: stringPtr("vat-control")}

	li := domain.LineItem{Vat: vat}
	assert.Equal(t, "vat-control", li.VatPostingAccount())
	assert.True(t, decimal.NewFromInt(16).Equal(li.VatRate()))

	li.VatAccountID = stringPtr("vat-secondary")
	assert.Equal(t, "vat-secondary", li.VatPostingAccount())

	assert.True(t, domain.LineItem{}.VatRate().IsZero())
	assert.Equal(t, "", domain.LineItem{}.VatPostingAccount())
}

func TestEntity_ReportingPeriods(t *testing.T) {
	calendar := domain.Entity{YearStart: 1}
	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 2024, calendar.Year(date))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), calendar.PeriodStart(date))

	fiscal := domain.Entity{YearStart: 7}
	assert.Equal(t, 2023, fiscal.Year(date))
	assert.Equal(t, time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), fiscal.PeriodStart(date))
	assert.Equal(t, time.Date(2024, 6, 30, 23, 59, 59, 999999000, time.UTC), fiscal.PeriodEnd(date))

	august := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2024, fiscal.Year(august))

	// unset start month falls back to January
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), domain.Entity{}.PeriodStart(date))
}

func TestNextAccountCode(t *testing.T) {
	assert.Equal(t, 3001, domain.NextAccountCode(domain.Bank, 0))
	assert.Equal(t, 7003, domain.NextAccountCode(domain.Control, 2))
	assert.True(t, domain.Reconciliation.IsValid())
	assert.False(t, domain.AccountType("ASSET").IsValid())
}

func TestClearableFromBalance(t *testing.T) {
	b := domain.Balance{
		BalanceID:     "b1",
		BalanceType:   domain.Credit,
		Amount:        decimal.NewFromInt(80),
		ClearedAmount: decimal.NewFromInt(20),
	}
	c := domain.ClearableFromBalance(b, nil)
	assert.True(t, c.IsCredited)
	assert.True(t, c.IsPosted)
	assert.True(t, c.IsOpeningBalance())
	assert.True(t, decimal.NewFromInt(60).Equal(c.UnclearedAmount()))
	assert.Equal(t, domain.BalanceRef("b1"), c.Ref)
}
