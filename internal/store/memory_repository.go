/**
 * @description
 * This file implements an in-memory AccountRepository. It backs the service
 * in local development when no DATABASE_URL is configured, and it is the
 * store the unit tests run against.
 *
 * @notes
 * - A single mutex guards the map. That is the point-operation atomicity the
 *   interface requires; the optimistic compare in CompareAndUpdateBalance
 *   carries the same semantics as the conditional UPDATE in the Postgres
 *   implementation.
 * - Records are copied on the way in and out so callers can never mutate
 *   stored state without going through the repository.
 */
package store

import (
	"context"
	"sync"
	"time"

	"github.com/quickbank/account-service/internal/domain"
)

// MemoryAccountRepository is an in-memory implementation of AccountRepository.
// It is safe for concurrent use.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// NewMemoryAccountRepository creates an empty in-memory repository.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// CreateAccount inserts a new account, failing with ErrDuplicateKey if the
// account number is taken.
func (m *MemoryAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[account.AccountNumber]; exists {
		return nil, ErrDuplicateKey
	}

	stored := *account
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.accounts[stored.AccountNumber] = &stored

	copied := stored
	return &copied, nil
}

// FindByAccountNumber returns a copy of the stored account.
func (m *MemoryAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, exists := m.accounts[accountNumber]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

// CompareAndUpdateBalance commits newBalance only if the stored balance still
// equals expectedBalance, mirroring the conditional UPDATE of the Postgres
// implementation.
func (m *MemoryAccountRepository) CompareAndUpdateBalance(ctx context.Context, accountNumber string, expectedBalance, newBalance int64) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, exists := m.accounts[accountNumber]
	if !exists {
		return nil, ErrNotFound
	}
	if stored.Balance != expectedBalance {
		return nil, ErrConflict
	}

	stored.Balance = newBalance
	stored.UpdatedAt = time.Now()

	copied := *stored
	return &copied, nil
}

// Compile-time check: ensure MemoryAccountRepository implements AccountRepository.
var _ AccountRepository = (*MemoryAccountRepository)(nil)
