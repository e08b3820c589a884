// Package transfer sequences withdraw+deposit across two accounts as one
// logical operation. Stores that support it get a single cross-account
// transaction; otherwise the legs run as a saga with a compensating
// re-deposit on failure.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/ledgerstore"
	"github.com/bankcore-dev/bankcore/internal/model"
	"github.com/bankcore-dev/bankcore/internal/txlog"
)

// Service orchestrates transfers between two accounts of one customer.
type Service struct {
	store    ledgerstore.Store
	recorder *txlog.Recorder
	log      zerolog.Logger
}

// NewService creates a transfer Service.
func NewService(store ledgerstore.Store, recorder *txlog.Recorder, log zerolog.Logger) *Service {
	return &Service{store: store, recorder: recorder, log: log}
}

// Params holds parameters for one transfer.
type Params struct {
	FromAccount string
	ToAccount   string
	CustomerID  string
	Amount      decimal.Decimal
	FromType    model.AccountType
	ToType      model.AccountType
}

// Transfer moves Amount from the source to the destination account and, on
// success, records exactly one Transfer transaction referencing both. Either
// both legs apply or neither does; a failed compensation is escalated as
// model.ErrLedgerInconsistent rather than returned as a normal error.
func (s *Service) Transfer(ctx context.Context, params Params) (string, error) {
	if _, ok := model.ParseAccountType(string(params.FromType)); !ok {
		return "", fmt.Errorf("%w: source type %q", model.ErrInvalidAccountType, params.FromType)
	}
	if _, ok := model.ParseAccountType(string(params.ToType)); !ok {
		return "", fmt.Errorf("%w: destination type %q", model.ErrInvalidAccountType, params.ToType)
	}
	if !params.Amount.IsPositive() {
		return "", fmt.Errorf("%w: transfer of %s", model.ErrInvalidAmount, params.Amount)
	}

	transferID := uuid.NewString()
	log := s.log.With().
		Str("transfer_id", transferID).
		Str("from", params.FromAccount).
		Str("to", params.ToAccount).
		Str("amount", params.Amount.String()).
		Logger()

	if at, ok := s.store.(ledgerstore.AtomicTransferrer); ok {
		if err := at.TransferBalances(ctx, params.FromAccount, params.ToAccount, params.CustomerID, params.Amount); err != nil {
			return "", fmt.Errorf("transfer %s: %w", transferID, err)
		}
	} else if err := s.transferSaga(ctx, params, log); err != nil {
		return "", err
	}

	number, err := s.recorder.Record(ctx, txlog.RecordParams{
		Type:        model.TxnTransfer,
		Amount:      params.Amount,
		FromAccount: params.FromAccount,
		ToAccount:   params.ToAccount,
		CustomerID:  params.CustomerID,
	})
	if err != nil {
		return "", fmt.Errorf("recording transfer %s: %w", transferID, err)
	}

	log.Info().Str("transaction", number).Msg("transfer complete")
	return number, nil
}

// transferSaga runs withdraw then deposit as separate atomic updates. A
// failed deposit triggers a compensating re-deposit into the source account.
func (s *Service) transferSaga(ctx context.Context, params Params, log zerolog.Logger) error {
	_, err := s.store.UpdateBalance(ctx, params.FromAccount, params.CustomerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		if balance.LessThan(params.Amount) {
			return decimal.Zero, fmt.Errorf("%w: balance %s, requested %s", model.ErrInsufficientFunds, balance, params.Amount)
		}
		return balance.Sub(params.Amount), nil
	})
	if err != nil {
		return fmt.Errorf("transfer withdrawal from %s: %w", params.FromAccount, err)
	}

	_, err = s.store.UpdateBalance(ctx, params.ToAccount, params.CustomerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		return balance.Add(params.Amount), nil
	})
	if err == nil {
		return nil
	}
	depositErr := err

	log.Warn().Err(depositErr).Msg("transfer deposit leg failed, compensating source account")

	_, err = s.store.UpdateBalance(ctx, params.FromAccount, params.CustomerID, func(balance decimal.Decimal) (decimal.Decimal, error) {
		return balance.Add(params.Amount), nil
	})
	if err != nil {
		// The withdrawal applied and cannot be restored: the ledger is in a
		// partially-applied state. Operator intervention is required.
		log.Error().
			Err(err).
			Bool("ledger_inconsistent", true).
			Str("uncompensated_amount", params.Amount.String()).
			Msg("transfer compensation failed")
		return fmt.Errorf("%w: account %s is short %s (deposit leg: %v, compensation: %v)",
			model.ErrLedgerInconsistent, params.FromAccount, params.Amount, depositErr, err)
	}

	return fmt.Errorf("transfer deposit to %s: %w", params.ToAccount, depositErr)
}

// IsFatal reports whether err demands operator escalation instead of caller
// retry.
func IsFatal(err error) bool {
	return errors.Is(err, model.ErrLedgerInconsistent)
}
