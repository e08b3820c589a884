// Package id generates candidate transaction numbers. Numbers are policy
// identifiers, not secrets: uniqueness is enforced by the ledger store's
// insert-if-absent, with the recorder retrying fresh candidates on collision.
package id

import (
	"fmt"
	"math/rand/v2"
)

// Transaction numbers are fixed-width numeric strings. The 8-digit space
// keeps collision retries rare while staying short enough to read aloud.
const (
	txnNumberDigits = 8
	txnNumberMin    = 10_000_000
	txnNumberSpan   = 90_000_000
)

// NewTransactionNumber returns a random candidate transaction number like
// "48291057".
func NewTransactionNumber() string {
	return fmt.Sprintf("%0*d", txnNumberDigits, txnNumberMin+rand.Int64N(txnNumberSpan))
}

// ValidTransactionNumber reports whether s has the shape of a transaction
// number.
func ValidTransactionNumber(s string) bool {
	if len(s) != txnNumberDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s[0] != '0'
}
