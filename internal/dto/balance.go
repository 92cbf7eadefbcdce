package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBalanceRequest defines an opening balance brought into a reporting year.
type CreateBalanceRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	CurrencyCode    string                 `json:"currencyCode" binding:"omitempty,currency"` // defaults to the account currency
	Year            int                    `json:"year" binding:"required,min=1900,max=9999"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=IN BL JN"`
	TransactionNo   string                 `json:"transactionNo"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	Reference       string                 `json:"reference"`
	BalanceType     domain.EntryType       `json:"balanceType" binding:"required,oneof=DEBIT CREDIT"`
	Amount          decimal.Decimal        `json:"amount"`
	ExchangeRate    *decimal.Decimal       `json:"exchangeRate"` // defaults to the applicable rate
}

// StatementResponse is the opening, movement and closing picture of an account.
type StatementResponse struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Year         int             `json:"year"`
	PeriodStart  time.Time       `json:"periodStart"`
	EndDate      time.Time       `json:"endDate"`
	Opening      decimal.Decimal `json:"opening"`
	Movement     decimal.Decimal `json:"movement"`
	Closing      decimal.Decimal `json:"closing"`
	Display      string          `json:"display"`
}
