package interest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcore-dev/bankcore/internal/bank"
	"github.com/bankcore-dev/bankcore/internal/ledgerstore"
	"github.com/bankcore-dev/bankcore/internal/model"
	"github.com/bankcore-dev/bankcore/internal/txlog"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRun_AppliesToEverySavingsAccount(t *testing.T) {
	ctx := context.Background()
	store := ledgerstore.NewMemoryStore()
	recorder := txlog.NewRecorder(store, zerolog.Nop())
	bankSvc := bank.NewService(store, recorder, dec("0.02"), zerolog.Nop())
	engine := NewEngine(store, bankSvc, zerolog.Nop())

	accounts := []model.Account{
		{AccountNumber: "SAV-1", CustomerName: "A", CustomerID: "cust-1", Type: model.AccountTypeSavings, Balance: dec("1000.00"), InterestRate: dec("0.02")},
		{AccountNumber: "SAV-2", CustomerName: "B", CustomerID: "cust-2", Type: model.AccountTypeSavings, Balance: dec("0"), InterestRate: dec("0.02")},
		{AccountNumber: "CHK-1", CustomerName: "C", CustomerID: "cust-3", Type: model.AccountTypeChecking, Balance: dec("9999")},
	}
	for _, a := range accounts {
		require.NoError(t, store.CreateAccount(ctx, a))
	}

	results, err := engine.Run(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2, "checking accounts are not visited")

	byAccount := make(map[string]Result, len(results))
	for _, r := range results {
		byAccount[r.AccountNumber] = r
	}

	assert.True(t, byAccount["SAV-1"].Applied)
	assert.Equal(t, "20.00", byAccount["SAV-1"].Interest.StringFixed(2))
	assert.False(t, byAccount["SAV-2"].Applied, "zero balance accrues nothing")

	account, err := store.GetAccount(ctx, "SAV-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("1020.00")))

	account, err = store.GetAccount(ctx, "CHK-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("9999")), "checking untouched")
}

func TestRun_EmptyStore(t *testing.T) {
	store := ledgerstore.NewMemoryStore()
	recorder := txlog.NewRecorder(store, zerolog.Nop())
	bankSvc := bank.NewService(store, recorder, dec("0.02"), zerolog.Nop())
	engine := NewEngine(store, bankSvc, zerolog.Nop())

	results, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}
