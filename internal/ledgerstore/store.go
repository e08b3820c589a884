// Package ledgerstore defines the durable storage contract for account
// balances and the transaction log, with in-memory and Postgres
// implementations.
package ledgerstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/model"
)

// Store is the ledger's storage contract. Implementations must make every
// balance mutation a single atomic read-modify-write per account, and every
// transaction insert an atomic insert-if-absent keyed by transaction number.
type Store interface {
	// CreateAccount inserts a new account. Returns model.ErrAlreadyExists
	// if the account number is taken; the existing account is untouched.
	CreateAccount(ctx context.Context, account model.Account) error

	// GetAccount returns the account with the given number, or
	// model.ErrNotFound.
	GetAccount(ctx context.Context, accountNumber string) (model.Account, error)

	// AccountNumberFor returns the account number owned by the customer for
	// the given account type, or model.ErrNotFound.
	AccountNumberFor(ctx context.Context, customerID string, accountType model.AccountType) (string, error)

	// UpdateBalance applies mutate to the current balance of the account
	// identified by accountNumber and owned by customerID, as one atomic
	// unit with respect to concurrent updates of the same account. An error
	// from mutate aborts the update with no change. Returns the new balance.
	UpdateBalance(ctx context.Context, accountNumber, customerID string, mutate func(decimal.Decimal) (decimal.Decimal, error)) (decimal.Decimal, error)

	// InsertTransaction appends one immutable record to the transaction log.
	// Returns model.ErrAlreadyExists if the transaction number is taken.
	// The log is append-only: no update or delete exists on this interface.
	InsertTransaction(ctx context.Context, txn model.Transaction) error

	// TransactionsByCustomer returns the customer's transactions with dates
	// inside the inclusive window, ordered newest first (date, then time).
	TransactionsByCustomer(ctx context.Context, customerID string, start, end time.Time) ([]model.Transaction, error)

	// SavingsAccounts returns all savings accounts, for interest batch runs.
	SavingsAccounts(ctx context.Context) ([]model.Account, error)
}

// AtomicTransferrer is implemented by stores that can move funds between two
// accounts in a single cross-account transaction, removing the need for the
// orchestrator's compensation step.
type AtomicTransferrer interface {
	// TransferBalances debits from and credits to atomically. Returns
	// model.ErrInsufficientFunds if the source balance is too low at the
	// instant of application, model.ErrNotFound if either account/customer
	// pair is absent. On error no balance changes.
	TransferBalances(ctx context.Context, fromAccount, toAccount, customerID string, amount decimal.Decimal) error
}
