package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for recording an exchange rate.
type CreateExchangeRateRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
	Rate         decimal.Decimal `json:"rate"`
	ValidFrom    time.Time       `json:"validFrom" binding:"required"`
	ValidTo      *time.Time      `json:"validTo"`
}

// ExchangeRateQuery selects the date a rate must be applicable on.
type ExchangeRateQuery struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	ValidFrom      time.Time       `json:"validFrom"`
	ValidTo        *time.Time      `json:"validTo,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyCode:   rate.CurrencyCode,
		Rate:           rate.Rate,
		ValidFrom:      rate.ValidFrom,
		ValidTo:        rate.ValidTo,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
	}
}
