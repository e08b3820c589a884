package model

import "errors"

// Error kinds surfaced by the ledger core. Callers match with errors.Is;
// wrapped messages carry the operation detail.
var (
	// ErrInvalidInput marks a malformed or missing required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAmount marks a non-positive or unparsable amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNotFound marks an unknown account or account/customer pair.
	ErrNotFound = errors.New("account not found")

	// ErrAlreadyExists marks a duplicate account number or transaction number.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInsufficientFunds marks a withdrawal exceeding the balance at the
	// atomic instant of application.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAccountType marks an account type outside checking/savings.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrStoreUnavailable marks an underlying storage failure.
	ErrStoreUnavailable = errors.New("ledger store unavailable")

	// ErrLedgerInconsistent marks a failed transfer compensation: the ledger
	// is in a partially-applied state and requires operator intervention.
	// This is an escalation, not a recoverable error.
	ErrLedgerInconsistent = errors.New("ledger inconsistent: transfer compensation failed")
)
