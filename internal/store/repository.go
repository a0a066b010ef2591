/**
 * @description
 * This file defines the interface for the account data access layer, plus the
 * storage-level errors every implementation must surface. Defining an
 * interface allows for dependency injection and easy substitution in tests,
 * keeping the ledger logic decoupled from the concrete backend.
 *
 * @notes
 * - `CompareAndUpdateBalance` is the only mutation primitive for balances.
 *   No caller writes the balance column directly; a write commits only if
 *   the stored balance still equals the value the caller read, which is what
 *   lets concurrent withdrawals against one account serialize correctly
 *   without a long-held lock.
 */
package store

import (
	"context"
	"errors"

	"github.com/quickbank/account-service/internal/domain"
)

var (
	// ErrDuplicateKey is returned by CreateAccount when the account number
	// is already present.
	ErrDuplicateKey = errors.New("store: duplicate account number")

	// ErrNotFound is returned when no record exists for the account number.
	ErrNotFound = errors.New("store: account not found")

	// ErrConflict is returned by CompareAndUpdateBalance when the stored
	// balance no longer equals the expected value; the caller must re-read
	// and retry.
	ErrConflict = errors.New("store: balance changed since read")

	// ErrUnavailable is returned when the durable medium cannot be
	// reached. Retryable at a higher layer, never retried internally.
	ErrUnavailable = errors.New("store: storage unavailable")
)

// AccountRepository defines the contract for account persistence.
type AccountRepository interface {
	// CreateAccount inserts a new record. The whole record becomes visible
	// atomically or not at all. Fails with ErrDuplicateKey if the account
	// number already exists.
	CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// FindByAccountNumber is a point lookup with no side effects.
	FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// CompareAndUpdateBalance sets the balance to newBalance only if the
	// stored balance still equals expectedBalance at the moment of the
	// write. Returns the updated record on success, ErrConflict when a
	// concurrent writer got there first, ErrNotFound when the account
	// does not exist.
	CompareAndUpdateBalance(ctx context.Context, accountNumber string, expectedBalance, newBalance int64) (*domain.Account, error)
}
