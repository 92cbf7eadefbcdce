package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the business document type of a transaction.
type TransactionType string

const (
	CashSale            TransactionType = "CS"
	ClientInvoice       TransactionType = "IN"
	CreditNote          TransactionType = "CN"
	ClientReceipt       TransactionType = "RC"
	ClientInvoiceCredit TransactionType = "IC"
	CashPurchase        TransactionType = "CP"
	SupplierBill        TransactionType = "BL"
	DebitNote           TransactionType = "DN"
	SupplierPayment     TransactionType = "PY"
	SupplierBillCredit  TransactionType = "BC"
	ContraEntry         TransactionType = "CE"
	JournalEntry        TransactionType = "JN"
)

type transactionTypeInfo struct {
	name     string
	credited bool
}

var transactionTypes = map[TransactionType]transactionTypeInfo{
	CashSale:            {"Cash Sale", false},
	ClientInvoice:       {"Client Invoice", false},
	CreditNote:          {"Credit Note", true},
	ClientReceipt:       {"Client Receipt", true},
	ClientInvoiceCredit: {"Client Invoice Credit", false},
	CashPurchase:        {"Cash Purchase", true},
	SupplierBill:        {"Supplier Bill", true},
	DebitNote:           {"Debit Note", false},
	SupplierPayment:     {"Supplier Payment", false},
	SupplierBillCredit:  {"Supplier Bill Credit", true},
	ContraEntry:         {"Contra Entry", false},
	JournalEntry:        {"Journal Entry", false},
}

// Assignables are the transaction types that may settle other transactions.
var Assignables = []TransactionType{
	ClientReceipt, SupplierPayment, CreditNote, DebitNote, JournalEntry, ClientInvoiceCredit, SupplierBillCredit,
}

// Clearables are the transaction types that may be settled.
var Clearables = []TransactionType{ClientInvoice, SupplierBill, JournalEntry}

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	_, ok := transactionTypes[t]
	return ok
}

// Name is the human readable label of the type.
func (t TransactionType) Name() string {
	return transactionTypes[t].name
}

// DefaultCredited is the credit convention a transaction of this type takes on
// its main account unless overridden (only journal entries may override).
func (t TransactionType) DefaultCredited() bool {
	return transactionTypes[t].credited
}

// IsAssignable reports whether t may settle other transactions.
func (t TransactionType) IsAssignable() bool {
	return containsType(Assignables, t)
}

// IsClearable reports whether t may be settled.
func (t TransactionType) IsClearable() bool {
	return containsType(Clearables, t)
}

func containsType(types []TransactionType, t TransactionType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// Transaction is a business document that posts to the ledger.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	EntityID        string          `json:"entityID"`
	TransactionNo   string          `json:"transactionNo"`
	TransactionType TransactionType `json:"transactionType"`
	TransactionDate time.Time       `json:"transactionDate"`
	Reference       string          `json:"reference"`
	Narration       string          `json:"narration"`
	AccountID       string          `json:"accountID"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	IsCredited      bool            `json:"isCredited"`
	IsPosted        bool            `json:"isPosted"`
	Amount          decimal.Decimal `json:"amount"`
	AssignedAmount  decimal.Decimal `json:"assignedAmount"`
	ClearedAmount   decimal.Decimal `json:"clearedAmount"`
	LineItems       []LineItem      `json:"lineItems,omitempty"`
	AuditFields
}

// Balance is the part of the transaction not yet assigned to clearables.
func (t Transaction) Balance() decimal.Decimal {
	return t.Amount.Sub(t.AssignedAmount)
}

// UnclearedAmount is the part of the transaction not yet settled by assignables.
func (t Transaction) UnclearedAmount() decimal.Decimal {
	return t.Amount.Sub(t.ClearedAmount)
}

// LineItemTotal is the sum of amount times quantity over the line items, excluding VAT.
func (t Transaction) LineItemTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range t.LineItems {
		total = total.Add(li.Amount.Mul(li.Quantity))
	}
	return total
}

// LineItem is one line of a transaction posting against a single account.
type LineItem struct {
	LineItemID    string          `json:"lineItemID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Narration     string          `json:"narration"`
	Quantity      decimal.Decimal `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	VatID         *string         `json:"vatID,omitempty"`
	VatInclusive  bool            `json:"vatInclusive"`
	VatAccountID  *string         `json:"vatAccountID,omitempty"`
	Vat           *Vat            `json:"vat,omitempty"`
	AuditFields
}

// VatRate is the rate of the attached VAT, zero when there is none.
func (li LineItem) VatRate() decimal.Decimal {
	if li.Vat == nil {
		return decimal.Zero
	}
	return li.Vat.Rate
}

// VatPostingAccount is the account receiving the tax portion of the line.
func (li LineItem) VatPostingAccount() string {
	if li.VatAccountID != nil && *li.VatAccountID != "" {
		return *li.VatAccountID
	}
	if li.Vat != nil && li.Vat.AccountID != nil {
		return *li.Vat.AccountID
	}
	return ""
}
