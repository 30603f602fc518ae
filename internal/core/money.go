// Package core holds the financial domain model and the pure computation
// rules: schedule projection, budget evaluation, transfer balance math and
// investment valuation. Nothing in this package touches storage or I/O.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a strictly positive monetary amount from user input.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for malformed input, zero or negative values.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseSignedAmount parses a monetary amount that may be negative or zero,
// such as an account balance.
func ParseSignedAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with two fractional digits for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
