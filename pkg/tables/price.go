package tables

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Price extraction works on free-text cells like "￥0.1449/小时" or
// "￥1.122/小时（约￥1,670.00/月）". The patterns live here as pure
// text-to-number functions so they stay testable without any document
// structure around them.
var (
	// hourly: currency amount immediately followed by the per-hour unit.
	hourlyPattern = regexp.MustCompile(`￥\s*([\d.]+)\s*/\s*小时`)

	// monthly: the "approximately" marker, an amount that may carry
	// thousands separators, and the per-month unit.
	monthlyPattern = regexp.MustCompile(`约\s*￥\s*([\d,]+(?:\.\d+)?)\s*/\s*月`)

	// bare currency amount, for simple single-price cells.
	amountPattern = regexp.MustCompile(`￥\s*([\d,]+(?:\.\d+)?)`)
)

// hourlyUnit is matched as a substring when dispatching simple-table
// prices between the hourly and monthly fields.
const hourlyUnit = "小时"

// ParsePriceText extracts the hourly and monthly prices from a price
// cell. A missing pattern yields 0 for that field, never an error.
func ParsePriceText(text string) (hourly, monthly float64) {
	if m := hourlyPattern.FindStringSubmatch(text); m != nil {
		hourly = parseAmount(m[1])
	}
	if m := monthlyPattern.FindStringSubmatch(text); m != nil {
		monthly = parseAmount(m[1])
	}
	return hourly, monthly
}

// CurrencyAmount returns the first currency amount in text, or false when
// none is present.
func CurrencyAmount(text string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return parseAmount(m[1]), true
}

// parseAmount converts a matched amount to a float, stripping thousands
// separators first. Decimal arithmetic avoids binary-float surprises on
// values like 0.1449 before the final conversion.
func parseAmount(s string) float64 {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
