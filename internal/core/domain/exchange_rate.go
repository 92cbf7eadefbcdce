package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate converts an amount in CurrencyCode to the entity's reporting currency.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	EntityID       string          `json:"entityID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	ValidFrom      time.Time       `json:"validFrom"`
	ValidTo        *time.Time      `json:"validTo,omitempty"`
	AuditFields
}

// ExpiredAt reports whether the rate's validity ended before at.
func (r ExchangeRate) ExpiredAt(at time.Time) bool {
	return r.ValidTo != nil && r.ValidTo.Before(at)
}
