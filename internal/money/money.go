// Package money keeps monetary arithmetic in decimal so that totals built
// from many feed rows do not drift.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Sum adds the values in decimal and returns the float result.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// Extend returns quantity × unit price.
func Extend(quantity, unitPrice float64) float64 {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).InexactFloat64()
}

// RelativeDiff returns |actual − expected| / expected. When expected is zero
// any non-zero actual is a full (1.0) difference.
func RelativeDiff(actual, expected float64) float64 {
	if expected == 0 {
		if actual == 0 {
			return 0
		}
		return 1
	}
	a := decimal.NewFromFloat(actual)
	e := decimal.NewFromFloat(expected)
	return a.Sub(e).Abs().Div(e.Abs()).InexactFloat64()
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Format renders an amount as dollars, e.g. "$5.50".
func Format(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// Valid reports whether v is a usable, non-negative amount or quantity.
func Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Percent formats a ratio as a percentage with one decimal, e.g. "10.0%".
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
