package dto

import "github.com/shopspring/decimal"

// CreateVatRequest defines a VAT rate. A non-zero rate needs a CONTROL account.
type CreateVatRequest struct {
	Name      string          `json:"name" binding:"required"`
	Code      string          `json:"code" binding:"required"`
	Rate      decimal.Decimal `json:"rate"`
	AccountID *string         `json:"accountID"`
}
