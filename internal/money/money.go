// Package money converts between decimal amount strings and integer
// minor units (cents). All arithmetic elsewhere in the codebase happens
// in cents; decimals exist only at the MCP boundary.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseCents converts a decimal string like "10.01" into cents.
// Amounts with more than two fraction digits are rejected rather than
// rounded, so the caller can never lose sub-cent precision silently.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("invalid amount %q: out of range", s)
	}
	return shifted.IntPart(), nil
}

// FormatCents renders cents as a decimal string with two fraction
// digits, e.g. 1001 -> "10.01", -50 -> "-0.50".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
