package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/bank"
	"github.com/bankcore-dev/bankcore/internal/config"
	"github.com/bankcore-dev/bankcore/internal/interest"
	"github.com/bankcore-dev/bankcore/internal/ledgerstore"
	"github.com/bankcore-dev/bankcore/internal/logging"
	"github.com/bankcore-dev/bankcore/internal/money"
	"github.com/bankcore-dev/bankcore/internal/transfer"
	"github.com/bankcore-dev/bankcore/internal/txlog"
)

// runtime holds the wired services for one command invocation. The store
// handle is explicit here; no component reaches for ambient global state.
type runtime struct {
	cfg       *config.Config
	log       zerolog.Logger
	store     ledgerstore.Store
	bank      *bank.Service
	transfers *transfer.Service
	query     *txlog.Query
	interest  *interest.Engine

	close func() error
}

// newRuntime loads config and wires the store and services.
func newRuntime(configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logging.New(cfg.Log.Level)

	var store ledgerstore.Store
	closeStore := func() error { return nil }
	switch cfg.Store.Driver {
	case "postgres":
		pg, err := ledgerstore.OpenPostgres(cfg.Store.DSN, time.Duration(cfg.Store.Timeout))
		if err != nil {
			return nil, err
		}
		store = pg
		closeStore = pg.Close
	case "memory":
		store = ledgerstore.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	rate, err := money.ParseRate(cfg.Interest.SavingsRate)
	if err != nil {
		closeStore() //nolint:errcheck
		return nil, fmt.Errorf("interest.savings_rate: %w", err)
	}

	recorder := txlog.NewRecorder(store, log)
	bankSvc := bank.NewService(store, recorder, rate, log)

	return &runtime{
		cfg:       cfg,
		log:       log,
		store:     store,
		bank:      bankSvc,
		transfers: transfer.NewService(store, recorder, log),
		query:     txlog.NewQuery(store, log),
		interest:  interest.NewEngine(store, bankSvc, log),
		close:     closeStore,
	}, nil
}

// parseAmountArg parses a positive CLI amount argument.
func parseAmountArg(s string) (decimal.Decimal, error) {
	d, err := money.ParseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", s, err)
	}
	return d, nil
}
