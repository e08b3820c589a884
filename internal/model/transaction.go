package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType labels an entry in the transaction log. The values match
// the strings stored in the log.
type TransactionType string

const (
	TxnDeposit        TransactionType = "Deposit"
	TxnWithdrawal     TransactionType = "Withdrawal"
	TxnTransfer       TransactionType = "Transfer"
	TxnOpeningDeposit TransactionType = "Opening Deposit"
)

// Transaction is one immutable entry in the append-only transaction log.
// FromAccount is empty for pure deposits; ToAccount is empty for pure
// withdrawals.
type Transaction struct {
	Number      string
	Type        TransactionType
	Amount      decimal.Decimal
	FromAccount string
	ToAccount   string
	CustomerID  string
	RecordedAt  time.Time
}

// Details is the read-only view of a transaction returned by history
// searches, with date and time split out the way callers display them.
type Details struct {
	Number      string
	Type        TransactionType
	Amount      decimal.Decimal
	Time        string // "15:04:05"
	Date        string // "2006-01-02"
	FromAccount string
	ToAccount   string
}

// DateLayout is the wire format for transaction dates and search windows.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for transaction times.
const TimeLayout = "15:04:05"

// View converts a stored transaction to its display form.
func (t Transaction) View() Details {
	return Details{
		Number:      t.Number,
		Type:        t.Type,
		Amount:      t.Amount,
		Time:        t.RecordedAt.Format(TimeLayout),
		Date:        t.RecordedAt.Format(DateLayout),
		FromAccount: t.FromAccount,
		ToAccount:   t.ToAccount,
	}
}
