package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func entry(txID, post string, typ domain.EntryType, amount string, day int) domain.LedgerEntry {
	return domain.LedgerEntry{
		TransactionID: txID,
		PostAccount:   post,
		EntryType:     typ,
		Amount:        dec(amount),
		PostingDate:   time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestBalanceAndContribution(t *testing.T) {
	superseded := time.Now()
	old := entry("t1", "bank", domain.Debit, "999", 1)
	old.SupersededAt = &superseded

	entries := []domain.LedgerEntry{
		entry("t1", "bank", domain.Debit, "100", 1),
		entry("t2", "bank", domain.Credit, "30", 5),
		entry("t3", "bank", domain.Debit, "7.5", 20),
		entry("t1", "revenue", domain.Credit, "100", 1),
		old,
	}

	assert.Equal(t, "77.5", Balance(entries, "bank").String())
	assert.Equal(t, "100", Contribution(entries, "bank", "t1").String())
	assert.Equal(t, "-100", Contribution(entries, "revenue", "t1").String())
	assert.True(t, Balance(entries, "unused").IsZero())
}

func TestOpeningBalance(t *testing.T) {
	records := []domain.Balance{
		{BalanceType: domain.Debit, Amount: dec("150"), ExchangeRate: dec("1.5")},
		{BalanceType: domain.Credit, Amount: dec("40"), ExchangeRate: dec("1")},
		{BalanceType: domain.Debit, Amount: dec("5")},
	}
	assert.Equal(t, "65", OpeningBalance(records).String())
	assert.True(t, OpeningBalance(nil).IsZero())
}

func TestAccountStatementRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	s := NewAccountStatement("bank", 2024, start, end, dec("65"), dec("-15.25"))
	assert.Equal(t, "49.75", s.Closing.String())

	empty := NewAccountStatement("idle", 2024, start, end, decimal.Zero, decimal.Zero)
	assert.True(t, empty.Closing.IsZero())
}

func TestDayBounds(t *testing.T) {
	d := time.Date(2024, 2, 29, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), StartOfDay(d))
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC), EndOfDay(d))
}
