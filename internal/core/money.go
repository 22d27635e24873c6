// Package core provides money parsing and handling utilities.
//
// This file contains the parser for amounts typed into form fields and the
// display formatting shared by every front end.
package core

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	// CurrencySymbol prefixes every rendered amount.
	CurrencySymbol = "₹"

	// DateLayout renders dates as DD Mon YYYY.
	DateLayout = "02 Jan 2006"
)

// ParseAmount converts a user-entered amount to a decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and keeps
// the full precision of the input. Signs, letters, more than one separator,
// empty strings and zero are rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("0")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	if parts[0] == "" {
		parts[0] = "0"
	}
	for _, p := range parts {
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return decimal.Zero, ErrInvalidAmount
			}
		}
	}
	d, err := decimal.NewFromString(strings.Join(parts, "."))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// FormatCurrency renders an amount with the currency symbol and exactly two
// decimals. Negative balances keep their sign after the symbol.
func FormatCurrency(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

// FormatDate renders t as DD Mon YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
