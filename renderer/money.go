package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// currency returns the currency called code, never nil.
func currency(code string) *money.Currency {
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, code).Currency()
}

// Money formats an amount in major units, like 1234.5 USD as "$1,234.50".
func Money(value float64, code string) string {
	cur := currency(code)
	minor := decimal.NewFromFloat(value).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedMoney is Money with an explicit "+" for positive amounts.
func SignedMoney(value float64, code string) string {
	if value > 0 {
		return "+" + Money(value, code)
	}
	return Money(value, code)
}
