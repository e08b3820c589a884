package model

import "github.com/shopspring/decimal"

// AccountType classifies the two supported account variants.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// ParseAccountType normalizes a caller-supplied account type string.
func ParseAccountType(s string) (AccountType, bool) {
	switch AccountType(s) {
	case AccountTypeChecking:
		return AccountTypeChecking, true
	case AccountTypeSavings:
		return AccountTypeSavings, true
	}
	return "", false
}

// Account is a balance holder owned by a customer. A type tag replaces
// subclassing: InterestRate is meaningful only for savings accounts.
type Account struct {
	AccountNumber string
	CustomerName  string
	CustomerID    string
	Type          AccountType
	Balance       decimal.Decimal
	InterestRate  decimal.Decimal // zero for checking accounts
}

// IsSavings reports whether the account accrues interest.
func (a Account) IsSavings() bool {
	return a.Type == AccountTypeSavings
}
