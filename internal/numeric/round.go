// Package numeric provides the rounding, formatting, and input sanitizing
// helpers shared by the portfolio and valuation packages.
package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultDecimalPlaces is used when a caller passes a non-positive place count.
const DefaultDecimalPlaces = 2

// RoundToDecimal rounds v to the given number of decimal places.
// NaN and infinities are returned unchanged. A places value of zero or less
// falls back to DefaultDecimalPlaces.
func RoundToDecimal(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if places <= 0 {
		places = DefaultDecimalPlaces
	}
	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64()
}

// SafeRoundToDecimal behaves like RoundToDecimal but maps NaN and infinities to 0,
// so degenerate arithmetic never reaches a caller as a non-finite value.
func SafeRoundToDecimal(v float64, places int) float64 {
	if !IsFinite(v) {
		return 0
	}
	return RoundToDecimal(v, places)
}

// SafeRoundPtr rounds an optional value, treating nil as 0.
func SafeRoundPtr(v *float64, places int) float64 {
	if v == nil {
		return 0
	}
	return SafeRoundToDecimal(*v, places)
}

// SafeDivide returns a/b and true, or 0 and false when b is zero or the
// quotient is not finite.
func SafeDivide(a, b float64) (float64, bool) {
	if b == 0 {
		return 0, false
	}
	q := a / b
	if !IsFinite(q) {
		return 0, false
	}
	return q, true
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
