package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table plus the settlement
// aggregates computed from live assignments.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	EntityID        string          `db:"entity_id"`
	TransactionNo   string          `db:"transaction_no"`
	TransactionType string          `db:"transaction_type"`
	TransactionDate time.Time       `db:"transaction_date"`
	Reference       string          `db:"reference"`
	Narration       string          `db:"narration"`
	AccountID       string          `db:"account_id"`
	CurrencyCode    string          `db:"currency_code"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	IsCredited      bool            `db:"is_credited"`
	IsPosted        bool            `db:"is_posted"`
	Amount          decimal.Decimal `db:"amount"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	AssignedAmount decimal.Decimal `db:"assigned_amount"`
	ClearedAmount  decimal.Decimal `db:"cleared_amount"`
}

// LineItem is a row of the line_items table.
type LineItem struct {
	LineItemID    string          `db:"line_item_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Narration     string          `db:"narration"`
	Quantity      decimal.Decimal `db:"quantity"`
	Amount        decimal.Decimal `db:"amount"`
	VatID         *string         `db:"vat_id"`
	VatInclusive  bool            `db:"vat_inclusive"`
	VatAccountID  *string         `db:"vat_account_id"`
	AuditFields
}
