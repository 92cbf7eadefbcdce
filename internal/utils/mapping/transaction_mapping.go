package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Line items are mapped separately.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		EntityID:        d.EntityID,
		TransactionNo:   d.TransactionNo,
		TransactionType: string(d.TransactionType),
		TransactionDate: d.TransactionDate,
		Reference:       d.Reference,
		Narration:       d.Narration,
		AccountID:       d.AccountID,
		CurrencyCode:    d.CurrencyCode,
		ExchangeRate:    d.ExchangeRate,
		IsCredited:      d.IsCredited,
		IsPosted:        d.IsPosted,
		Amount:          d.Amount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		AssignedAmount:  d.AssignedAmount,
		ClearedAmount:   d.ClearedAmount,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		EntityID:        m.EntityID,
		TransactionNo:   m.TransactionNo,
		TransactionType: domain.TransactionType(m.TransactionType),
		TransactionDate: m.TransactionDate.UTC(),
		Reference:       m.Reference,
		Narration:       m.Narration,
		AccountID:       m.AccountID,
		CurrencyCode:    m.CurrencyCode,
		ExchangeRate:    m.ExchangeRate,
		IsCredited:      m.IsCredited,
		IsPosted:        m.IsPosted,
		Amount:          m.Amount,
		AssignedAmount:  m.AssignedAmount,
		ClearedAmount:   m.ClearedAmount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:    d.LineItemID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Narration:     d.Narration,
		Quantity:      d.Quantity,
		Amount:        d.Amount,
		VatID:         d.VatID,
		VatInclusive:  d.VatInclusive,
		VatAccountID:  d.VatAccountID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem. The VAT
// definition is attached by the caller.
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:    m.LineItemID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Narration:     m.Narration,
		Quantity:      m.Quantity,
		Amount:        m.Amount,
		VatID:         m.VatID,
		VatInclusive:  m.VatInclusive,
		VatAccountID:  m.VatAccountID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
