package domain

import "github.com/shopspring/decimal"

// Vat is a tax rate applied to line items.
type Vat struct {
	VatID     string          `json:"vatID"`
	EntityID  string          `json:"entityID"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Rate      decimal.Decimal `json:"rate"` // percent
	AccountID *string         `json:"accountID,omitempty"`
	AuditFields
}
