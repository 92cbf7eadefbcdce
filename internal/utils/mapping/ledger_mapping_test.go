package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainLedgerEntry_NormalisesToUTC(t *testing.T) {
	eat := time.FixedZone("EAT", 3*60*60)
	vatID := "vat-1"
	d := domain.LedgerEntry{
		LedgerID:     "l1",
		Sequence:     7,
		VatID:        &vatID,
		EntryType:    domain.Credit,
		Amount:       decimal.RequireFromString("16.0000"),
		PostingDate:  time.Date(2024, 3, 1, 3, 0, 0, 0, eat),
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, eat),
		Hash:         "h",
		PreviousHash: "p",
	}

	back := ToDomainLedgerEntry(ToModelLedgerEntry(d))
	assert.Equal(t, time.UTC, back.PostingDate.Location())
	assert.True(t, d.PostingDate.Equal(back.PostingDate))
	assert.Equal(t, domain.Credit, back.EntryType)
	assert.Equal(t, &vatID, back.VatID)
	assert.Equal(t, int64(7), back.Sequence)
}
