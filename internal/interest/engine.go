// Package interest runs balance-proportional accrual over savings accounts.
// The cadence belongs to an external scheduler; each Run applies at most one
// accrual per account.
package interest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/bank"
	"github.com/bankcore-dev/bankcore/internal/ledgerstore"
)

// Engine applies interest to every savings account in the store.
type Engine struct {
	store ledgerstore.Store
	bank  *bank.Service
	log   zerolog.Logger
}

// NewEngine creates an interest Engine.
func NewEngine(store ledgerstore.Store, bankSvc *bank.Service, log zerolog.Logger) *Engine {
	return &Engine{store: store, bank: bankSvc, log: log}
}

// Result reports the accrual outcome for one account.
type Result struct {
	AccountNumber string
	Interest      decimal.Decimal
	Applied       bool
}

// Run applies interest to each savings account independently. Accounts that
// fail do not stop the run; the first error is returned after all accounts
// were attempted.
func (e *Engine) Run(ctx context.Context) ([]Result, error) {
	runID := uuid.NewString()
	log := e.log.With().Str("interest_run", runID).Logger()

	accounts, err := e.store.SavingsAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing savings accounts: %w", err)
	}

	var firstErr error
	results := make([]Result, 0, len(accounts))
	for _, account := range accounts {
		interest, err := e.bank.CalculateInterest(ctx, account.AccountNumber)
		if err == nil {
			var applied bool
			applied, err = e.bank.ApplyInterest(ctx, account.AccountNumber)
			if err == nil {
				results = append(results, Result{AccountNumber: account.AccountNumber, Interest: interest, Applied: applied})
				continue
			}
		}

		log.Error().Err(err).Str("account", account.AccountNumber).Msg("interest accrual failed")
		if firstErr == nil {
			firstErr = fmt.Errorf("accruing interest for %s: %w", account.AccountNumber, err)
		}
		results = append(results, Result{AccountNumber: account.AccountNumber})
	}

	log.Info().Int("accounts", len(accounts)).Msg("interest run complete")
	return results, firstErr
}
