package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest defines one line of a transaction.
type LineItemRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Narration    string           `json:"narration"`
	Quantity     *decimal.Decimal `json:"quantity"` // defaults to 1
	Amount       decimal.Decimal  `json:"amount"`
	VatID        *string          `json:"vatID"`
	VatInclusive bool             `json:"vatInclusive"`
	VatAccountID *string          `json:"vatAccountID"`
}

// CreateTransactionRequest defines the data needed to create an unposted transaction.
type CreateTransactionRequest struct {
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,txtype"`
	TransactionNo   string                 `json:"transactionNo"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	AccountID       string                 `json:"accountID" binding:"required"`
	CurrencyCode    string                 `json:"currencyCode" binding:"omitempty,currency"` // defaults to the account currency
	IsCredited      *bool                  `json:"isCredited"`                                // journal entries only
	Reference       string                 `json:"reference"`
	Narration       string                 `json:"narration"`
	LineItems       []LineItemRequest      `json:"lineItems" binding:"dive"`
}

// PostTransactionRequest controls posting.
type PostTransactionRequest struct {
	// AutoAssign settles outstanding clearables FIFO after posting a receipt or payment.
	AutoAssign     bool    `json:"autoAssign"`
	ForexAccountID *string `json:"forexAccountID"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID   string          `json:"lineItemID"`
	AccountID    string          `json:"accountID"`
	Narration    string          `json:"narration"`
	Quantity     decimal.Decimal `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	VatID        *string         `json:"vatID,omitempty"`
	VatInclusive bool            `json:"vatInclusive"`
	VatAccountID *string         `json:"vatAccountID,omitempty"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	EntityID        string                 `json:"entityID"`
	TransactionNo   string                 `json:"transactionNo"`
	TransactionType domain.TransactionType `json:"transactionType"`
	TransactionDate time.Time              `json:"transactionDate"`
	AccountID       string                 `json:"accountID"`
	CurrencyCode    string                 `json:"currencyCode"`
	ExchangeRate    decimal.Decimal        `json:"exchangeRate"`
	IsCredited      bool                   `json:"isCredited"`
	IsPosted        bool                   `json:"isPosted"`
	Amount          decimal.Decimal        `json:"amount"`
	Balance         decimal.Decimal        `json:"balance"`
	UnclearedAmount decimal.Decimal        `json:"unclearedAmount"`
	Reference       string                 `json:"reference"`
	Narration       string                 `json:"narration"`
	LineItems       []LineItemResponse     `json:"lineItems"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
}

// ToLineItemResponse converts a domain.LineItem to its DTO
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:   li.LineItemID,
		AccountID:    li.AccountID,
		Narration:    li.Narration,
		Quantity:     li.Quantity,
		Amount:       li.Amount,
		VatID:        li.VatID,
		VatInclusive: li.VatInclusive,
		VatAccountID: li.VatAccountID,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	lines := make([]LineItemResponse, len(txn.LineItems))
	for i := range txn.LineItems {
		lines[i] = ToLineItemResponse(&txn.LineItems[i])
	}
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		EntityID:        txn.EntityID,
		TransactionNo:   txn.TransactionNo,
		TransactionType: txn.TransactionType,
		TransactionDate: txn.TransactionDate,
		AccountID:       txn.AccountID,
		CurrencyCode:    txn.CurrencyCode,
		ExchangeRate:    txn.ExchangeRate,
		IsCredited:      txn.IsCredited,
		IsPosted:        txn.IsPosted,
		Amount:          txn.Amount,
		Balance:         txn.Balance(),
		UnclearedAmount: txn.UnclearedAmount(),
		Reference:       txn.Reference,
		Narration:       txn.Narration,
		LineItems:       lines,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ContributionResponse is a transaction's net effect on one account.
type ContributionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Contribution  decimal.Decimal `json:"contribution"`
}

// ContributionParams selects the account a contribution is computed for.
type ContributionParams struct {
	AccountID string `form:"account_id" binding:"required"`
}
