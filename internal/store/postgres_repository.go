/**
 * @description
 * This file implements the PostgreSQL data access layer for accounts. It
 * provides a clean interface for the ledger logic to interact with the
 * `accounts` table.
 *
 * Expected schema:
 *
 *   CREATE TABLE accounts (
 *       account_number      TEXT PRIMARY KEY,
 *       account_holder_name TEXT NOT NULL,
 *       pin_hash            TEXT NOT NULL,
 *       phone_number        TEXT NOT NULL,
 *       account_balance     BIGINT NOT NULL CHECK (account_balance >= 0),
 *       created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
 *       updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
 *   );
 *
 * @dependencies
 * - context: For request-scoped deadlines and cancellations.
 * - log: For logging database errors.
 * - github.com/jackc/pgx/v5/pgxpool: The PostgreSQL driver.
 * - The service's internal domain package for the Account model.
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quickbank/account-service/internal/domain"
)

// PostgresAccountRepository is the PostgreSQL implementation of AccountRepository.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new instance of PostgresAccountRepository.
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

const accountColumns = `account_number, account_holder_name, pin_hash, phone_number, account_balance, created_at, updated_at`

// CreateAccount inserts a new account record into the database.
func (r *PostgresAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
        INSERT INTO accounts (account_number, account_holder_name, pin_hash, phone_number, account_balance)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + accountColumns

	created, err := r.scanAccount(r.db.QueryRow(ctx, query,
		account.AccountNumber,
		account.AccountHolderName,
		account.PINHash,
		account.PhoneNumber,
		account.Balance,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			log.Printf("Error creating account %s: unique constraint violation", account.AccountNumber)
			return nil, ErrDuplicateKey
		}
		log.Printf("Error inserting account into database: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return created, nil
}

// FindByAccountNumber retrieves a single account by its account number.
func (r *PostgresAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Printf("Error finding account %s: %v", accountNumber, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return account, nil
}

// CompareAndUpdateBalance commits the new balance only if the stored balance
// still equals expectedBalance. The balance guard lives in the WHERE clause,
// so the check and the write are one atomic statement.
func (r *PostgresAccountRepository) CompareAndUpdateBalance(ctx context.Context, accountNumber string, expectedBalance, newBalance int64) (*domain.Account, error) {
	query := `
        UPDATE accounts
        SET account_balance = $3, updated_at = NOW()
        WHERE account_number = $1 AND account_balance = $2
        RETURNING ` + accountColumns

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, accountNumber, expectedBalance, newBalance))
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("Error updating balance for account %s: %v", accountNumber, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Zero rows means either the account is gone or the balance moved
	// under us. A follow-up point read disambiguates.
	if _, findErr := r.FindByAccountNumber(ctx, accountNumber); findErr != nil {
		return nil, findErr
	}
	return nil, ErrConflict
}

func (r *PostgresAccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountNumber,
		&a.AccountHolderName,
		&a.PINHash,
		&a.PhoneNumber,
		&a.Balance,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Compile-time check: ensure PostgresAccountRepository implements AccountRepository.
var _ AccountRepository = (*PostgresAccountRepository)(nil)
