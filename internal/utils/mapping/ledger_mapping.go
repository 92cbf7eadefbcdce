package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerID:      d.LedgerID,
		Sequence:      d.Sequence,
		EntityID:      d.EntityID,
		TransactionID: d.TransactionID,
		LineItemID:    d.LineItemID,
		VatID:         d.VatID,
		PostAccount:   d.PostAccount,
		FolioAccount:  d.FolioAccount,
		EntryType:     string(d.EntryType),
		Amount:        d.Amount,
		PostingDate:   d.PostingDate,
		CreatedAt:     d.CreatedAt,
		Hash:          d.Hash,
		PreviousHash:  d.PreviousHash,
		SupersededAt:  d.SupersededAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
// Timestamps come back from the database in UTC so digests recompute identically.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerID:      m.LedgerID,
		Sequence:      m.Sequence,
		EntityID:      m.EntityID,
		TransactionID: m.TransactionID,
		LineItemID:    m.LineItemID,
		VatID:         m.VatID,
		PostAccount:   m.PostAccount,
		FolioAccount:  m.FolioAccount,
		EntryType:     domain.EntryType(m.EntryType),
		Amount:        m.Amount,
		PostingDate:   m.PostingDate.UTC(),
		CreatedAt:     m.CreatedAt.UTC(),
		Hash:          m.Hash,
		PreviousHash:  m.PreviousHash,
		SupersededAt:  m.SupersededAt,
	}
}
