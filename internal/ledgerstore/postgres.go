package ledgerstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/model"
)

// PostgresStore is the durable Store backed by database/sql + lib/pq.
// Balance mutations run inside a transaction holding a row lock, so each
// update is a single atomic read-modify-write. It also implements
// AtomicTransferrer: both transfer legs commit in one transaction.
type PostgresStore struct {
	db      *sql.DB
	timeout time.Duration
}

var (
	_ Store             = (*PostgresStore)(nil)
	_ AtomicTransferrer = (*PostgresStore)(nil)
)

// OpenPostgres connects to Postgres, verifies the connection, and bootstraps
// the schema. Every store operation is bounded by timeout.
func OpenPostgres(dsn string, timeout time.Duration) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening postgres: %v", model.ErrStoreUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: pinging postgres: %v", model.ErrStoreUnavailable, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	store := &PostgresStore{db: db, timeout: timeout}
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) ensureSchema() error {
	ctx, cancel := s.opCtx(context.Background())
	defer cancel()

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			account_number VARCHAR(20) PRIMARY KEY,
			customer_name  VARCHAR(100) NOT NULL,
			customer_id    VARCHAR(50) NOT NULL,
			account_type   VARCHAR(10) NOT NULL,
			balance        NUMERIC(15, 2) NOT NULL DEFAULT 0.00,
			interest_rate  NUMERIC(8, 6) NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_customer ON accounts(customer_id, account_type)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_number VARCHAR(20) PRIMARY KEY,
			transaction_type   VARCHAR(20) NOT NULL,
			amount             NUMERIC(15, 2) NOT NULL,
			from_account       VARCHAR(20),
			to_account         VARCHAR(20),
			customer_id        VARCHAR(50) NOT NULL,
			recorded_at        TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_customer_date ON transactions(customer_id, recorded_at)`,
	}
	for i, migration := range migrations {
		if _, err := s.db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("%w: migration %d: %v", model.ErrStoreUnavailable, i+1, err)
		}
	}
	return nil
}

func (s *PostgresStore) CreateAccount(ctx context.Context, account model.Account) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO accounts (account_number, customer_name, customer_id, account_type, balance, interest_rate)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		account.AccountNumber,
		account.CustomerName,
		account.CustomerID,
		string(account.Type),
		account.Balance,
		account.InterestRate,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: account %s", model.ErrAlreadyExists, account.AccountNumber)
	}
	if err != nil {
		return storeErr("inserting account", err)
	}
	return nil
}

func (s *PostgresStore) GetAccount(ctx context.Context, accountNumber string) (model.Account, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `
		SELECT account_number, customer_name, customer_id, account_type, balance, interest_rate
		FROM accounts
		WHERE account_number = $1
	`
	var account model.Account
	var accountType string
	err := s.db.QueryRowContext(ctx, query, accountNumber).Scan(
		&account.AccountNumber,
		&account.CustomerName,
		&account.CustomerID,
		&accountType,
		&account.Balance,
		&account.InterestRate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("%w: account %s", model.ErrNotFound, accountNumber)
	}
	if err != nil {
		return model.Account{}, storeErr("reading account", err)
	}
	account.Type = model.AccountType(accountType)
	return account, nil
}

func (s *PostgresStore) AccountNumberFor(ctx context.Context, customerID string, accountType model.AccountType) (string, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `SELECT account_number FROM accounts WHERE customer_id = $1 AND account_type = $2`
	var accountNumber string
	err := s.db.QueryRowContext(ctx, query, customerID, string(accountType)).Scan(&accountNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: no %s account for customer %s", model.ErrNotFound, accountType, customerID)
	}
	if err != nil {
		return "", storeErr("reading account number", err)
	}
	return accountNumber, nil
}

func (s *PostgresStore) UpdateBalance(ctx context.Context, accountNumber, customerID string, mutate func(decimal.Decimal) (decimal.Decimal, error)) (decimal.Decimal, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, storeErr("beginning balance update", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var balance decimal.Decimal
	query := `SELECT balance FROM accounts WHERE account_number = $1 AND customer_id = $2 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, accountNumber, customerID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: account %s for customer %s", model.ErrNotFound, accountNumber, customerID)
	}
	if err != nil {
		return decimal.Zero, storeErr("locking balance row", err)
	}

	newBalance, err := mutate(balance)
	if err != nil {
		return decimal.Zero, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = $1 WHERE account_number = $2`, newBalance, accountNumber); err != nil {
		return decimal.Zero, storeErr("writing balance", err)
	}
	if err := tx.Commit(); err != nil {
		return decimal.Zero, storeErr("committing balance update", err)
	}
	return newBalance, nil
}

// TransferBalances moves amount between two accounts in one transaction.
// Rows are locked in account-number order so concurrent opposite-direction
// transfers cannot deadlock.
func (s *PostgresStore) TransferBalances(ctx context.Context, fromAccount, toAccount, customerID string, amount decimal.Decimal) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("beginning transfer", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	first, second := fromAccount, toAccount
	if second < first {
		first, second = second, first
	}

	balances := make(map[string]decimal.Decimal, 2)
	query := `
		SELECT account_number, balance FROM accounts
		WHERE account_number IN ($1, $2) AND customer_id = $3
		ORDER BY account_number
		FOR UPDATE
	`
	rows, err := tx.QueryContext(ctx, query, first, second, customerID)
	if err != nil {
		return storeErr("locking transfer rows", err)
	}
	for rows.Next() {
		var number string
		var balance decimal.Decimal
		if err := rows.Scan(&number, &balance); err != nil {
			rows.Close()
			return storeErr("scanning transfer row", err)
		}
		balances[number] = balance
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return storeErr("reading transfer rows", err)
	}
	rows.Close()

	fromBalance, ok := balances[fromAccount]
	if !ok {
		return fmt.Errorf("%w: account %s for customer %s", model.ErrNotFound, fromAccount, customerID)
	}
	toBalance, ok := balances[toAccount]
	if !ok {
		return fmt.Errorf("%w: account %s for customer %s", model.ErrNotFound, toAccount, customerID)
	}
	if fromBalance.LessThan(amount) {
		return fmt.Errorf("%w: balance %s, requested %s", model.ErrInsufficientFunds, fromBalance, amount)
	}

	update := `UPDATE accounts SET balance = $1 WHERE account_number = $2`
	if _, err := tx.ExecContext(ctx, update, fromBalance.Sub(amount), fromAccount); err != nil {
		return storeErr("debiting source", err)
	}
	if _, err := tx.ExecContext(ctx, update, toBalance.Add(amount), toAccount); err != nil {
		return storeErr("crediting destination", err)
	}
	if err := tx.Commit(); err != nil {
		return storeErr("committing transfer", err)
	}
	return nil
}

func (s *PostgresStore) InsertTransaction(ctx context.Context, txn model.Transaction) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO transactions (transaction_number, transaction_type, amount, from_account, to_account, customer_id, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		txn.Number,
		string(txn.Type),
		txn.Amount,
		txn.FromAccount,
		txn.ToAccount,
		txn.CustomerID,
		txn.RecordedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: transaction %s", model.ErrAlreadyExists, txn.Number)
	}
	if err != nil {
		return storeErr("inserting transaction", err)
	}
	return nil
}

func (s *PostgresStore) TransactionsByCustomer(ctx context.Context, customerID string, start, end time.Time) ([]model.Transaction, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `
		SELECT transaction_number, transaction_type, amount, from_account, to_account, customer_id, recorded_at
		FROM transactions
		WHERE customer_id = $1 AND recorded_at::date BETWEEN $2::date AND $3::date
		ORDER BY recorded_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, customerID, start, end)
	if err != nil {
		return nil, storeErr("querying transactions", err)
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var txnType string
		if err := rows.Scan(&txn.Number, &txnType, &txn.Amount, &txn.FromAccount, &txn.ToAccount, &txn.CustomerID, &txn.RecordedAt); err != nil {
			return nil, storeErr("scanning transaction", err)
		}
		txn.Type = model.TransactionType(txnType)
		result = append(result, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("reading transactions", err)
	}
	return result, nil
}

func (s *PostgresStore) SavingsAccounts(ctx context.Context) ([]model.Account, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `
		SELECT account_number, customer_name, customer_id, account_type, balance, interest_rate
		FROM accounts
		WHERE account_type = $1
		ORDER BY account_number
	`
	rows, err := s.db.QueryContext(ctx, query, string(model.AccountTypeSavings))
	if err != nil {
		return nil, storeErr("querying savings accounts", err)
	}
	defer rows.Close()

	var result []model.Account
	for rows.Next() {
		var account model.Account
		var accountType string
		if err := rows.Scan(&account.AccountNumber, &account.CustomerName, &account.CustomerID, &accountType, &account.Balance, &account.InterestRate); err != nil {
			return nil, storeErr("scanning savings account", err)
		}
		account.Type = model.AccountType(accountType)
		result = append(result, account)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("reading savings accounts", err)
	}
	return result, nil
}

func (s *PostgresStore) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrStoreUnavailable, op, err)
}
