// Package money holds the currency arithmetic shared by the tax calculator
// and the sale engine. Amounts are computed with shopspring/decimal and
// persisted as int64 cents.
package money

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	nickel  = decimal.NewFromFloat(0.05)
)

// Round2 rounds an amount to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundToNickel rounds an amount to the nearest multiple of $0.05, half up.
// Used for cash tenders so totals match physical coin denominations.
func RoundToNickel(d decimal.Decimal) decimal.Decimal {
	return d.Div(nickel).Round(0).Mul(nickel)
}

// ToCents converts a decimal dollar amount to int64 cents, rounding to the
// cent first so the conversion is always exact.
func ToCents(d decimal.Decimal) int64 {
	return d.Round(2).Mul(hundred).IntPart()
}

// FromCents converts int64 cents to a decimal dollar amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.NewFromInt(c).Div(hundred)
}

// CentsToFloat converts int64 cents to a float64 dollar amount for display.
func CentsToFloat(c int64) float64 {
	return float64(c) / 100
}
