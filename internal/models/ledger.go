package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the append-only ledgers table.
type LedgerEntry struct {
	LedgerID      string          `db:"ledger_id"`
	Sequence      int64           `db:"sequence"`
	EntityID      string          `db:"entity_id"`
	TransactionID string          `db:"transaction_id"`
	LineItemID    string          `db:"line_item_id"`
	VatID         *string         `db:"vat_id"`
	PostAccount   string          `db:"post_account"`
	FolioAccount  string          `db:"folio_account"`
	EntryType     string          `db:"entry_type"` // DEBIT or CREDIT
	Amount        decimal.Decimal `db:"amount"`
	PostingDate   time.Time       `db:"posting_date"`
	CreatedAt     time.Time       `db:"created_at"`
	Hash          string          `db:"hash"`
	PreviousHash  string          `db:"previous_hash"`
	SupersededAt  *time.Time      `db:"superseded_at"` // Nullable
}
