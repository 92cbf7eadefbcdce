package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CurrencyPrecision returns the number of minor-unit digits of an ISO-4217
// currency, and false for unknown codes.
func CurrencyPrecision(currencyCode string) (int, bool) {
	c := money.GetCurrency(currencyCode)
	if c == nil {
		return 0, false
	}
	return c.Fraction, true
}

// FormatWithCurrencyPrecision rounds an amount to its currency's minor unit.
// Example: 12.3456 USD returns "12.35", 12.3456 JPY returns "12".
// Unknown currencies keep the ledger's four decimal places.
func FormatWithCurrencyPrecision(amount decimal.Decimal, currencyCode string) string {
	precision, ok := CurrencyPrecision(currencyCode)
	if !ok {
		return amount.StringFixed(4)
	}
	return amount.StringFixed(int32(precision))
}

// DisplayAmount renders an amount with the currency's symbol and grouping,
// e.g. "$1,234.50". Unknown currencies fall back to the rounded figure.
func DisplayAmount(amount decimal.Decimal, currencyCode string) string {
	precision, ok := CurrencyPrecision(currencyCode)
	if !ok {
		return FormatWithCurrencyPrecision(amount, currencyCode)
	}
	minor := amount.Shift(int32(precision)).Round(0).IntPart()
	return money.New(minor, currencyCode).Display()
}
