// Package money parses and rounds exact-decimal amounts at the system
// boundary. Amounts are parsed once here and carried as decimal.Decimal
// everywhere else, never re-parsed from formatted output.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/model"
)

// ParseAmount parses a positive monetary amount. Returns ErrInvalidAmount
// for unparsable, zero, or negative input.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive, got %s", model.ErrInvalidAmount, d)
	}
	return d, nil
}

// ParseNonNegative parses an amount that may be zero, such as an initial
// deposit on account opening.
func ParseNonNegative(s string) (decimal.Decimal, error) {
	d, err := parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative, got %s", model.ErrInvalidAmount, d)
	}
	return d, nil
}

// ParseRate parses a non-negative interest rate such as "0.02".
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: rate must not be negative, got %s", model.ErrInvalidAmount, d)
	}
	return d, nil
}

// RoundCents rounds to 2 decimal places using round-half-to-even.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

func parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", model.ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal", model.ErrInvalidAmount, s)
	}
	return d, nil
}
