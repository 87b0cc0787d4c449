package utils

import (
	"github.com/shopspring/decimal"
)

// DefaultDisplayPrecision is the number of decimal places shown for amounts in reports.
const DefaultDisplayPrecision = 2

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatAmount formats an amount for display, leaving zero amounts blank.
// Trial balance columns use it so each row shows only its own side.
func FormatAmount(amount decimal.Decimal, precision int) string {
	if amount.IsZero() {
		return ""
	}
	return FormatWithPrecision(amount, precision)
}

// FormatPercent formats a percentage to one decimal place with a % suffix.
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
