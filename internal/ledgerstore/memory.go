package ledgerstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/model"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs tests and the
// memory config driver. The mutex makes every UpdateBalance a serialized
// read-modify-write, which satisfies the atomicity contract.
//
// MemoryStore deliberately does not implement AtomicTransferrer, so the
// transfer orchestrator exercises its saga path against it.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]model.Account     // keyed by account number
	txns     map[string]model.Transaction // keyed by transaction number
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]model.Account),
		txns:     make(map[string]model.Transaction),
	}
}

func (s *MemoryStore) CreateAccount(_ context.Context, account model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.AccountNumber]; ok {
		return fmt.Errorf("%w: account %s", model.ErrAlreadyExists, account.AccountNumber)
	}
	s.accounts[account.AccountNumber] = account
	return nil
}

func (s *MemoryStore) GetAccount(_ context.Context, accountNumber string) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return model.Account{}, fmt.Errorf("%w: account %s", model.ErrNotFound, accountNumber)
	}
	return account, nil
}

func (s *MemoryStore) AccountNumberFor(_ context.Context, customerID string, accountType model.AccountType) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.CustomerID == customerID && account.Type == accountType {
			return account.AccountNumber, nil
		}
	}
	return "", fmt.Errorf("%w: no %s account for customer %s", model.ErrNotFound, accountType, customerID)
}

func (s *MemoryStore) UpdateBalance(_ context.Context, accountNumber, customerID string, mutate func(decimal.Decimal) (decimal.Decimal, error)) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok || account.CustomerID != customerID {
		return decimal.Zero, fmt.Errorf("%w: account %s for customer %s", model.ErrNotFound, accountNumber, customerID)
	}

	newBalance, err := mutate(account.Balance)
	if err != nil {
		return decimal.Zero, err
	}

	account.Balance = newBalance
	s.accounts[accountNumber] = account
	return newBalance, nil
}

func (s *MemoryStore) InsertTransaction(_ context.Context, txn model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.txns[txn.Number]; ok {
		return fmt.Errorf("%w: transaction %s", model.ErrAlreadyExists, txn.Number)
	}
	s.txns[txn.Number] = txn
	return nil
}

func (s *MemoryStore) TransactionsByCustomer(_ context.Context, customerID string, start, end time.Time) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	var result []model.Transaction
	for _, txn := range s.txns {
		if txn.CustomerID != customerID {
			continue
		}
		day := truncateToDay(txn.RecordedAt)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		result = append(result, txn)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result, nil
}

func (s *MemoryStore) SavingsAccounts(_ context.Context) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Account
	for _, account := range s.accounts {
		if account.IsSavings() {
			result = append(result, account)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AccountNumber < result[j].AccountNumber
	})
	return result, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
