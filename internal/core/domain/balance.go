package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is an opening balance brought into a reporting period for an account.
// It behaves as a posted clearable.
type Balance struct {
	BalanceID       string          `json:"balanceID"`
	EntityID        string          `json:"entityID"`
	AccountID       string          `json:"accountID"`
	CurrencyCode    string          `json:"currencyCode"`
	Year            int             `json:"year"`
	TransactionType TransactionType `json:"transactionType"`
	TransactionNo   string          `json:"transactionNo"`
	TransactionDate time.Time       `json:"transactionDate"`
	Reference       string          `json:"reference"`
	BalanceType     EntryType       `json:"balanceType"`
	Amount          decimal.Decimal `json:"amount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ClearedAmount   decimal.Decimal `json:"clearedAmount"`
	AuditFields
}

// BalanceTransactionTypes are the document types an opening balance may carry.
var BalanceTransactionTypes = []TransactionType{ClientInvoice, SupplierBill, JournalEntry}
