package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/model"
	"github.com/bankcore-dev/bankcore/internal/money"
	"github.com/bankcore-dev/bankcore/internal/txlog"
)

// CalculateInterest computes balance x rate, rounded half-to-even to cents,
// for a savings account. Returns zero for checking accounts, absent
// accounts, and non-positive balances.
func (s *Service) CalculateInterest(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	account, err := s.store.GetAccount(ctx, accountNumber)
	if errors.Is(err, model.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("calculating interest for %s: %w", accountNumber, err)
	}
	return calculateInterest(account), nil
}

// ApplyInterest credits the computed interest to a savings account through
// the same atomic update path as a deposit, and records the credit as a
// Deposit transaction. Returns false when there is no interest to apply or
// the account is absent.
func (s *Service) ApplyInterest(ctx context.Context, accountNumber string) (bool, error) {
	account, err := s.store.GetAccount(ctx, accountNumber)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("applying interest to %s: %w", accountNumber, err)
	}

	// Recompute inside the atomic update so the credit always reflects the
	// balance at the instant of application.
	var interest decimal.Decimal
	_, err = s.store.UpdateBalance(ctx, accountNumber, account.CustomerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		account.Balance = balance
		interest = calculateInterest(account)
		if !interest.IsPositive() {
			return balance, nil
		}
		return balance.Add(interest), nil
	})
	if err != nil {
		return false, fmt.Errorf("applying interest to %s: %w", accountNumber, err)
	}
	if !interest.IsPositive() {
		s.log.Debug().Str("account", accountNumber).Msg("no interest to apply")
		return false, nil
	}

	if _, err := s.recorder.Record(ctx, txlog.RecordParams{
		Type:       model.TxnDeposit,
		Amount:     interest,
		ToAccount:  accountNumber,
		CustomerID: account.CustomerID,
	}); err != nil {
		return true, fmt.Errorf("recording interest credit to %s: %w", accountNumber, err)
	}

	s.log.Info().
		Str("account", accountNumber).
		Str("interest", interest.String()).
		Msg("interest applied")
	return true, nil
}

func calculateInterest(account model.Account) decimal.Decimal {
	if !account.IsSavings() || !account.Balance.IsPositive() {
		return decimal.Zero
	}
	return money.RoundCents(account.Balance.Mul(account.InterestRate))
}
