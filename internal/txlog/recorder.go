// Package txlog records immutable transaction entries and answers history
// queries over the append-only log.
package txlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/id"
	"github.com/bankcore-dev/bankcore/internal/ledgerstore"
	"github.com/bankcore-dev/bankcore/internal/model"
)

// maxNumberAttempts bounds candidate regeneration when transaction numbers
// collide. The 8-digit space makes more than a couple of retries pathological.
const maxNumberAttempts = 10

// Recorder assigns unique transaction numbers and appends immutable records
// to the log. Numbers are claimed by the store's insert-if-absent; a
// collision just means a fresh candidate.
type Recorder struct {
	store ledgerstore.Store
	now   func() time.Time
	log   zerolog.Logger
}

// NewRecorder creates a Recorder stamping records with time.Now.
func NewRecorder(store ledgerstore.Store, log zerolog.Logger) *Recorder {
	return &Recorder{store: store, now: time.Now, log: log}
}

// NewRecorderAt creates a Recorder with a custom clock, for tests.
func NewRecorderAt(store ledgerstore.Store, now func() time.Time, log zerolog.Logger) *Recorder {
	return &Recorder{store: store, now: now, log: log}
}

// RecordParams describes one transaction to append. FromAccount is empty for
// pure deposits, ToAccount for pure withdrawals.
type RecordParams struct {
	Type        model.TransactionType
	Amount      decimal.Decimal
	FromAccount string
	ToAccount   string
	CustomerID  string
}

// Record appends one immutable record and returns its assigned number.
func (r *Recorder) Record(ctx context.Context, params RecordParams) (string, error) {
	if !params.Amount.IsPositive() {
		return "", fmt.Errorf("%w: transaction amount %s", model.ErrInvalidAmount, params.Amount)
	}

	stamp := r.now()
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		txn := model.Transaction{
			Number:      id.NewTransactionNumber(),
			Type:        params.Type,
			Amount:      params.Amount,
			FromAccount: params.FromAccount,
			ToAccount:   params.ToAccount,
			CustomerID:  params.CustomerID,
			RecordedAt:  stamp,
		}

		err := r.store.InsertTransaction(ctx, txn)
		if err == nil {
			r.log.Debug().
				Str("transaction", txn.Number).
				Str("type", string(txn.Type)).
				Str("amount", txn.Amount.String()).
				Msg("transaction recorded")
			return txn.Number, nil
		}
		if errors.Is(err, model.ErrAlreadyExists) {
			r.log.Debug().Str("transaction", txn.Number).Int("attempt", attempt).Msg("transaction number collision, retrying")
			continue
		}
		return "", fmt.Errorf("recording transaction: %w", err)
	}
	return "", fmt.Errorf("%w: could not claim a transaction number after %d attempts", model.ErrStoreUnavailable, maxNumberAttempts)
}
