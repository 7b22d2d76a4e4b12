// Package stake converts win probabilities and bookmaker odds into
// recommended stake sizes.
package stake

import (
	"github.com/shopspring/decimal"
)

// Fraction returns the raw Kelly fraction of bankroll to wager for the given
// win probability and decimal odds. The result is deliberately unclamped: it
// goes negative when the bet has no edge and can exceed 1 for extreme
// inputs, which keeps the raw value meaningful for downstream comparisons.
// Callers needing "never bet negative" clamp at the presentation boundary.
func Fraction(winProb, odds float64) float64 {
	return winProb - (1-winProb)/odds
}

// Amount converts a Kelly fraction into a currency stake against the given
// bankroll, rounded to two decimal places. This is the presentation
// boundary: negative fractions map to a zero stake and the stake never
// exceeds the bankroll.
func Amount(bankroll decimal.Decimal, fraction float64) decimal.Decimal {
	if fraction <= 0 {
		return decimal.Zero
	}
	amount := bankroll.Mul(decimal.NewFromFloat(fraction)).Round(2)
	if amount.GreaterThan(bankroll) {
		return bankroll
	}
	return amount
}
