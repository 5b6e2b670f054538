// Package money provides the rounding and display helpers used when
// assembling and formatting calculation results. Amounts stay at full
// decimal precision inside the engine; rounding to cents happens once, here.
package money

import "github.com/shopspring/decimal"

// RoundCents rounds an amount to whole cents using banker's rounding.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// Format renders an amount as a dollar string with two decimal places.
func Format(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
