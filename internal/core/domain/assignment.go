package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClearedKind discriminates what an assignment clears.
type ClearedKind string

const (
	ClearedTransaction ClearedKind = "TRANSACTION"
	ClearedBalance     ClearedKind = "BALANCE"
)

// ClearedRef points at the item an assignment settles: a transaction or an opening balance.
type ClearedRef struct {
	Kind ClearedKind `json:"kind"`
	ID   string      `json:"id"`
}

// TransactionRef builds a ClearedRef to a transaction.
func TransactionRef(id string) ClearedRef {
	return ClearedRef{Kind: ClearedTransaction, ID: id}
}

// BalanceRef builds a ClearedRef to an opening balance.
func BalanceRef(id string) ClearedRef {
	return ClearedRef{Kind: ClearedBalance, ID: id}
}

// Assignment settles part of a clearable using the balance of an assignable transaction.
type Assignment struct {
	AssignmentID   string          `json:"assignmentID"`
	EntityID       string          `json:"entityID"`
	TransactionID  string          `json:"transactionID"`
	Cleared        ClearedRef      `json:"cleared"`
	Amount         decimal.Decimal `json:"amount"`
	ForexAccountID *string         `json:"forexAccountID,omitempty"`
	AssignmentDate time.Time       `json:"assignmentDate"`
	DeletedAt      *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}

// Clearable is the settlement view shared by transactions and opening balances.
type Clearable struct {
	Ref             ClearedRef      `json:"ref"`
	TransactionNo   string          `json:"transactionNo"`
	TransactionType TransactionType `json:"transactionType"`
	AccountID       string          `json:"accountID"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	IsCredited      bool            `json:"isCredited"`
	IsPosted        bool            `json:"isPosted"`
	Amount          decimal.Decimal `json:"amount"`
	ClearedAmount   decimal.Decimal `json:"clearedAmount"`
	// ClearedBy lists the assignable transactions that have settled this item.
	ClearedBy []string `json:"clearedBy,omitempty"`
	// HasAssigned is true when this item has itself acted as an assignable.
	HasAssigned bool      `json:"hasAssigned"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnclearedAmount is what is left to settle.
func (c Clearable) UnclearedAmount() decimal.Decimal {
	return c.Amount.Sub(c.ClearedAmount)
}

// IsOpeningBalance reports whether the clearable is an opening balance record.
func (c Clearable) IsOpeningBalance() bool {
	return c.Ref.Kind == ClearedBalance
}

// ClearableFromTransaction builds the settlement view of a transaction.
func ClearableFromTransaction(t Transaction, clearedBy []string, hasAssigned bool) Clearable {
	return Clearable{
		Ref:             TransactionRef(t.TransactionID),
		TransactionNo:   t.TransactionNo,
		TransactionType: t.TransactionType,
		AccountID:       t.AccountID,
		CurrencyCode:    t.CurrencyCode,
		ExchangeRate:    t.ExchangeRate,
		IsCredited:      t.IsCredited,
		IsPosted:        t.IsPosted,
		Amount:          t.Amount,
		ClearedAmount:   t.ClearedAmount,
		ClearedBy:       clearedBy,
		HasAssigned:     hasAssigned,
		CreatedAt:       t.CreatedAt,
	}
}

// ClearableFromBalance builds the settlement view of an opening balance.
func ClearableFromBalance(b Balance, clearedBy []string) Clearable {
	return Clearable{
		Ref:             BalanceRef(b.BalanceID),
		TransactionNo:   b.TransactionNo,
		TransactionType: b.TransactionType,
		AccountID:       b.AccountID,
		CurrencyCode:    b.CurrencyCode,
		ExchangeRate:    b.ExchangeRate,
		IsCredited:      b.BalanceType == Credit,
		IsPosted:        true,
		Amount:          b.Amount,
		ClearedAmount:   b.ClearedAmount,
		ClearedBy:       clearedBy,
		CreatedAt:       b.CreatedAt,
	}
}

// RecyclableType names the kind of record a tombstone refers to.
type RecyclableType string

const (
	RecyclableAssignment  RecyclableType = "ASSIGNMENT"
	RecyclableTransaction RecyclableType = "TRANSACTION"
	RecyclableAccount     RecyclableType = "ACCOUNT"
)

// Tombstone is the audit record left behind by a soft delete.
type Tombstone struct {
	TombstoneID    string         `json:"tombstoneID"`
	EntityID       string         `json:"entityID"`
	RecyclableType RecyclableType `json:"recyclableType"`
	RecyclableID   string         `json:"recyclableID"`
	UserID         string         `json:"userID"`
	DeletedAt      time.Time      `json:"deletedAt"`
}
