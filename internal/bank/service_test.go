package bank

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type fixture struct {
	store *ledgerstore.MemoryStore
	svc   *Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := ledgerstore.NewMemoryStore()
	recorder := txlog.NewRecorder(store, zerolog.Nop())
	return fixture{
		store: store,
		svc:   NewService(store, recorder, dec("0.02"), zerolog.Nop()),
	}
}

func (f fixture) open(t *testing.T, number, customerID string, accountType model.AccountType, initial string) {
	t.Helper()
	_, err := f.svc.Open(context.Background(), OpenParams{
		AccountNumber:  number,
		CustomerName:   "Test Customer",
		CustomerID:     customerID,
		Type:           accountType,
		InitialDeposit: initial,
	})
	require.NoError(t, err)
}

func (f fixture) records(t *testing.T, customerID string) []model.Transaction {
	t.Helper()
	now := time.Now()
	txns, err := f.store.TransactionsByCustomer(context.Background(), customerID,
		now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	return txns
}

func TestOpen_RecordsOpeningDeposit(t *testing.T) {
	f := newFixture(t)
	f.open(t, "CHK-1", "cust-1", model.AccountTypeChecking, "250.00")

	account, err := f.store.GetAccount(context.Background(), "CHK-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("250.00")))
	assert.True(t, account.InterestRate.IsZero(), "checking accounts carry no rate")

	txns := f.records(t, "cust-1")
	require.Len(t, txns, 1)
	assert.Equal(t, model.TxnOpeningDeposit, txns[0].Type)
	assert.True(t, txns[0].Amount.Equal(dec("250.00")))
	assert.Equal(t, "CHK-1", txns[0].ToAccount)
}

func TestOpen_SavingsGetsDefaultRate(t *testing.T) {
	f := newFixture(t)
	f.open(t, "SAV-1", "cust-1", model.AccountTypeSavings, "0")

	account, err := f.store.GetAccount(context.Background(), "SAV-1")
	require.NoError(t, err)
	assert.Equal(t, "0.02", account.InterestRate.String())
}

func TestOpen_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.open(t, "CHK-1", "cust-1", model.AccountTypeChecking, "100")

	_, err := f.svc.Open(context.Background(), OpenParams{
		AccountNumber:  "CHK-1",
		CustomerName:   "Somebody Else",
		CustomerID:     "cust-2",
		Type:           model.AccountTypeChecking,
		InitialDeposit: "999",
	})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	// First account untouched.
	account, err := f.store.GetAccount(context.Background(), "CHK-1")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", account.CustomerID)
	assert.True(t, account.Balance.Equal(dec("100")))
}

func TestOpen_Invalid(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		params OpenParams
		want   error
	}{
		{"empty account number", OpenParams{CustomerName: "C", CustomerID: "c1", Type: model.AccountTypeChecking, InitialDeposit: "1"}, model.ErrInvalidInput},
		{"empty customer name", OpenParams{AccountNumber: "CHK-9", CustomerID: "c1", Type: model.AccountTypeChecking, InitialDeposit: "1"}, model.ErrInvalidInput},
		{"empty customer id", OpenParams{AccountNumber: "CHK-9", CustomerName: "C", Type: model.AccountTypeChecking, InitialDeposit: "1"}, model.ErrInvalidInput},
		{"bad type", OpenParams{AccountNumber: "CHK-9", CustomerName: "C", CustomerID: "c1", Type: "money-market", InitialDeposit: "1"}, model.ErrInvalidAccountType},
		{"unparsable deposit", OpenParams{AccountNumber: "CHK-9", CustomerName: "C", CustomerID: "c1", Type: model.AccountTypeChecking, InitialDeposit: "ten"}, model.ErrInvalidInput},
		{"negative deposit", OpenParams{AccountNumber: "CHK-9", CustomerName: "C", CustomerID: "c1", Type: model.AccountTypeChecking, InitialDeposit: "-5"}, model.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Open(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDepositWithdraw_SequenceBalances(t *testing.T) {
	f := newFixture(t)
	f.open(t, "CHK-1", "cust-1", model.AccountTypeChecking, "100")
	ctx := context.Background()

	steps := []struct {
		op     string
		amount string
		want   string
	}{
		{"deposit", "50", "150"},
		{"withdraw", "30", "120"},
		{"deposit", "0.01", "120.01"},
		{"withdraw", "120.01", "0"},
	}
	for _, step := range steps {
		var balance decimal.Decimal
		var err error
		if step.op == "deposit" {
			balance, err = f.svc.Deposit(ctx, "CHK-1", "cust-1", dec(step.amount))
		} else {
			balance, err = f.svc.Withdraw(ctx, "CHK-1", "cust-1", dec(step.amount))
		}
		require.NoError(t, err, "%s %s", step.op, step.amount)
		assert.True(t, balance.Equal(dec(step.want)), "%s %s: got %s, want %s", step.op, step.amount, balance, step.want)
	}

	// One record per successful operation plus the opening deposit.
	assert.Len(t, f.records(t, "cust-1"), 5)
}

func TestDeposit_InvalidAmount(t *testing.T) {
	f := newFixture(t)
	f.open(t, "CHK-1", "cust-1", model.AccountTypeChecking, "100")

	for _, amount := range []string{"0", "-10"} {
		_, err := f.svc.Deposit(context.Background(), "CHK-1", "cust-1", dec(amount))
		assert.ErrorIs(t, err, model.ErrInvalidAmount, "amount: %s", amount)
	}
}

func TestDeposit_UnknownPair(t *testing.T) {
	f := newFixture(t)
	f.open(t, "CHK-1", "cust-1", model.AccountTypeChecking, "100")

	_, err := f.svc.Deposit(context.Background(), "CHK-1", "cust-2", dec("10"))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.svc.Deposit(context.Background(), "CHK-404", "cust-1", dec("10"))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.open(t, "CHK-1", "cust-1", model.AccountTypeChecking, "100")

	_, err := f.svc.Withdraw(context.Background(), "CHK-1", "cust-1", dec("100.01"))
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)

	balance, found, err := f.svc.Balance(context.Background(), "CHK-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, balance.Equal(dec("100")), "balance unchanged after failed withdrawal")

	// Failed withdrawal leaves no record.
	assert.Len(t, f.records(t, "cust-1"), 1)
}

func TestWithdraw_ConcurrentOverdraw(t *testing.T) {
	f := newFixture(t)
	f.open(t, "CHK-1", "cust-1", model.AccountTypeChecking, "100")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Withdraw(context.Background(), "CHK-1", "cust-1", dec("60"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, model.ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one of the two withdrawals succeeds")

	balance, _, err := f.svc.Balance(context.Background(), "CHK-1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("40")), "final balance is 40, got %s", balance)
}

func TestBalance_FoundFlag(t *testing.T) {
	f := newFixture(t)
	f.open(t, "CHK-1", "cust-1", model.AccountTypeChecking, "0")

	// A real zero balance reports found.
	balance, found, err := f.svc.Balance(context.Background(), "CHK-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, balance.IsZero())

	// An absent account reports zero and not-found, without error.
	balance, found, err = f.svc.Balance(context.Background(), "CHK-404")
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, balance.IsZero())
}

func TestAccountNumberFor(t *testing.T) {
	f := newFixture(t)
	f.open(t, "SAV-1", "cust-1", model.AccountTypeSavings, "0")

	number, found, err := f.svc.AccountNumberFor(context.Background(), "cust-1", model.AccountTypeSavings)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "SAV-1", number)

	_, found, err = f.svc.AccountNumberFor(context.Background(), "cust-1", model.AccountTypeChecking)
	require.NoError(t, err)
	assert.False(t, found)
}
