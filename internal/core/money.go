// Package core provides the expense record model and amount handling.
//
// This file contains functions for parsing monetary amounts typed by a user
// or read back from a store, and for formatting them with two decimals.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input to a decimal amount rounded to two places.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Rounding
// is half away from zero on the third decimal. Negative values are accepted.
// Returns ErrInvalidAmount for anything that is not a number.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("12.345") -> 12.35, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.Round(2), nil
}

// ParseStoredAmount parses an amount read back from a store. Unlike
// ParseAmount it does not normalize separators: stored amounts are always
// written with a dot, so anything else is a corrupt row.
func ParseStoredAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders d with exactly two fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
