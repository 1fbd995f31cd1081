package numeric

import (
	"fmt"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// NotAvailable is displayed in place of a metric that cannot be computed.
const NotAvailable = "N/A"

// FormatDollarAmount abbreviates large amounts with T, B, or M suffixes.
// Amounts below one million are printed as-is.
func FormatDollarAmount(amount float64) string {
	switch {
	case !IsFinite(amount):
		return NotAvailable
	case amount >= 1e12:
		return fmt.Sprintf("%.2fT", amount/1e12)
	case amount >= 1e9:
		return fmt.Sprintf("%.2fB", amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("%.2fM", amount/1e6)
	default:
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
}

// FormatCurrency renders amount using the ISO 4217 formatter for code.
// Unknown codes are formatted as USD.
func FormatCurrency(amount float64, code string) string {
	if !IsFinite(amount) {
		return NotAvailable
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := decimal.NewFromFloat(amount).Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatPercent renders v with two decimals and a percent sign.
func FormatPercent(v float64) string {
	if !IsFinite(v) {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", v)
}
