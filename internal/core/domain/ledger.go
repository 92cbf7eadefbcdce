package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the side of a ledger entry.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Opposite returns the mirrored side.
func (e EntryType) Opposite() EntryType {
	if e == Debit {
		return Credit
	}
	return Debit
}

// LedgerEntry is one half of a mirrored double-entry posting.
type LedgerEntry struct {
	LedgerID      string          `json:"ledgerID"`
	Sequence      int64           `json:"sequence"`
	EntityID      string          `json:"entityID"`
	TransactionID string          `json:"transactionID"`
	LineItemID    string          `json:"lineItemID"`
	VatID         *string         `json:"vatID,omitempty"`
	PostAccount   string          `json:"postAccount"`
	FolioAccount  string          `json:"folioAccount"`
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"`
	PostingDate   time.Time       `json:"postingDate"`
	CreatedAt     time.Time       `json:"createdAt"`
	Hash          string          `json:"hash"`
	PreviousHash  string          `json:"previousHash"`
	SupersededAt  *time.Time      `json:"supersededAt,omitempty"`
}

// SignedAmount is positive for debits and negative for credits.
func (l LedgerEntry) SignedAmount() decimal.Decimal {
	if l.EntryType == Credit {
		return l.Amount.Neg()
	}
	return l.Amount
}

// ChainBreak describes the first entry whose stored hash could not be reproduced.
type ChainBreak struct {
	Sequence     int64  `json:"sequence"`
	LedgerID     string `json:"ledgerID"`
	Reason       string `json:"reason"`
	StoredHash   string `json:"storedHash"`
	ExpectedHash string `json:"expectedHash"`
}

// ChainVerification is the result of scanning an entity's hash chain.
type ChainVerification struct {
	EntityID        string      `json:"entityID"`
	EntriesVerified int64       `json:"entriesVerified"`
	Valid           bool        `json:"valid"`
	Break           *ChainBreak `json:"break,omitempty"`
}
