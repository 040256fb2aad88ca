package engine

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

const defaultCurrency = "USD"

// roundFloat rounds v to the given number of decimal places.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// FormatDays renders a day count with one decimal.
func FormatDays(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	return fmt.Sprintf("%.1f", v)
}

// FormatPercent renders an already-scaled percentage with one decimal.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatMoney renders an amount with thousands separators and at most two
// decimals, prefixed by the currency code.
// Example: FormatMoney(-1234.5, "EUR") => "-EUR 1,234.5".
func FormatMoney(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	if currency == "" {
		currency = defaultCurrency
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%s %s", sign, currency, humanize.CommafWithDigits(roundFloat(v, 2), 2))
}

// FormatRatio renders a liquidity ratio with two decimals.
func FormatRatio(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *v)
}
