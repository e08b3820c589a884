// Package bank implements the account entity: opening, deposits,
// withdrawals, balance reads, and the savings interest policy.
package bank

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/ledgerstore"
	"github.com/bankcore-dev/bankcore/internal/model"
	"github.com/bankcore-dev/bankcore/internal/money"
	"github.com/bankcore-dev/bankcore/internal/txlog"
)

// Service provides account operations over a ledger store. Every balance
// change goes through the store's atomic update; every successful change
// appends exactly one transaction record.
type Service struct {
	store       ledgerstore.Store
	recorder    *txlog.Recorder
	savingsRate decimal.Decimal
	log         zerolog.Logger
}

// NewService creates a bank Service. savingsRate is the default interest
// rate assigned to newly opened savings accounts.
func NewService(store ledgerstore.Store, recorder *txlog.Recorder, savingsRate decimal.Decimal, log zerolog.Logger) *Service {
	return &Service{store: store, recorder: recorder, savingsRate: savingsRate, log: log}
}

// OpenParams holds parameters for opening an account. InitialDeposit is the
// raw caller-supplied amount; it is parsed here, once.
type OpenParams struct {
	AccountNumber  string
	CustomerName   string
	CustomerID     string
	Type           model.AccountType
	InitialDeposit string
}

// Open creates a new account with the initial deposit as its balance and
// records an Opening Deposit transaction.
func (s *Service) Open(ctx context.Context, params OpenParams) (model.Account, error) {
	if strings.TrimSpace(params.AccountNumber) == "" ||
		strings.TrimSpace(params.CustomerName) == "" ||
		strings.TrimSpace(params.CustomerID) == "" {
		return model.Account{}, fmt.Errorf("%w: account number, customer name and customer ID are required", model.ErrInvalidInput)
	}
	if _, ok := model.ParseAccountType(string(params.Type)); !ok {
		return model.Account{}, fmt.Errorf("%w: %q", model.ErrInvalidAccountType, params.Type)
	}

	initial, err := money.ParseNonNegative(params.InitialDeposit)
	if err != nil {
		return model.Account{}, fmt.Errorf("%w: initial deposit: %v", model.ErrInvalidInput, err)
	}

	account := model.Account{
		AccountNumber: params.AccountNumber,
		CustomerName:  params.CustomerName,
		CustomerID:    params.CustomerID,
		Type:          params.Type,
		Balance:       initial,
	}
	if account.IsSavings() {
		account.InterestRate = s.savingsRate
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return model.Account{}, fmt.Errorf("opening account %s: %w", params.AccountNumber, err)
	}

	number, err := s.recorder.Record(ctx, txlog.RecordParams{
		Type:       model.TxnOpeningDeposit,
		Amount:     initial,
		ToAccount:  account.AccountNumber,
		CustomerID: account.CustomerID,
	})
	if err != nil {
		// The account exists; the missing opening record is surfaced, not
		// rolled back, matching the store's append-only log contract.
		return account, fmt.Errorf("recording opening deposit for %s: %w", account.AccountNumber, err)
	}

	s.log.Info().
		Str("account", account.AccountNumber).
		Str("type", string(account.Type)).
		Str("transaction", number).
		Msg("account opened")
	return account, nil
}

// Deposit atomically credits amount to the account and records a Deposit
// transaction. Returns the new balance.
func (s *Service) Deposit(ctx context.Context, accountNumber, customerID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: deposit of %s", model.ErrInvalidAmount, amount)
	}

	newBalance, err := s.store.UpdateBalance(ctx, accountNumber, customerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		return balance.Add(amount), nil
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("depositing to %s: %w", accountNumber, err)
	}

	if _, err := s.recorder.Record(ctx, txlog.RecordParams{
		Type:       model.TxnDeposit,
		Amount:     amount,
		ToAccount:  accountNumber,
		CustomerID: customerID,
	}); err != nil {
		return newBalance, fmt.Errorf("recording deposit to %s: %w", accountNumber, err)
	}

	s.log.Debug().Str("account", accountNumber).Str("amount", amount.String()).Msg("deposit applied")
	return newBalance, nil
}

// Withdraw atomically debits amount from the account and records a
// Withdrawal transaction. The sufficient-funds check happens inside the
// atomic update, at the instant of application. Returns the new balance.
func (s *Service) Withdraw(ctx context.Context, accountNumber, customerID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: withdrawal of %s", model.ErrInvalidAmount, amount)
	}

	newBalance, err := s.store.UpdateBalance(ctx, accountNumber, customerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		if balance.LessThan(amount) {
			return decimal.Zero, fmt.Errorf("%w: balance %s, requested %s", model.ErrInsufficientFunds, balance, amount)
		}
		return balance.Sub(amount), nil
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("withdrawing from %s: %w", accountNumber, err)
	}

	if _, err := s.recorder.Record(ctx, txlog.RecordParams{
		Type:        model.TxnWithdrawal,
		Amount:      amount,
		FromAccount: accountNumber,
		CustomerID:  customerID,
	}); err != nil {
		return newBalance, fmt.Errorf("recording withdrawal from %s: %w", accountNumber, err)
	}

	s.log.Debug().Str("account", accountNumber).Str("amount", amount.String()).Msg("withdrawal applied")
	return newBalance, nil
}

// Balance returns the account's balance and whether the account exists.
// An absent account yields (0, false, nil): absence is an explicit signal
// here, not an error, so callers can no longer mistake a real zero balance
// for a missing account.
func (s *Service) Balance(ctx context.Context, accountNumber string) (decimal.Decimal, bool, error) {
	account, err := s.store.GetAccount(ctx, accountNumber)
	if errors.Is(err, model.ErrNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("reading balance of %s: %w", accountNumber, err)
	}
	return account.Balance, true, nil
}

// AccountNumberFor returns the customer's account number for the given type,
// with found=false when the customer has no such account.
func (s *Service) AccountNumberFor(ctx context.Context, customerID string, accountType model.AccountType) (string, bool, error) {
	number, err := s.store.AccountNumberFor(ctx, customerID, accountType)
	if errors.Is(err, model.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up account for customer %s: %w", customerID, err)
	}
	return number, true, nil
}
