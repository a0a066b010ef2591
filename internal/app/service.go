/**
 * @description
 * This file contains the core business logic for the account service. The
 * `LedgerService` struct orchestrates all account operations: registration,
 * authentication, detail lookup and withdrawal, coordinating between the
 * account repository and the message broker.
 *
 * Key features:
 * - Enforces the balance invariant: a withdrawal that would push the balance
 *   below zero is rejected, never clamped, and the balance must never be
 *   decremented twice for one logical request.
 * - Withdrawal runs an optimistic compare-and-update loop with a bounded
 *   retry count. Concurrent withdrawals against one account serialize
 *   through the store's conditional write; unrelated accounts never contend.
 * - Translates storage-level errors into the domain taxonomy; no raw store
 *   error crosses this boundary.
 * - Publishes events to RabbitMQ after successful state changes.
 *
 * @dependencies
 * - context, errors, fmt, log, strings, time: Standard Go libraries.
 * - internal/domain, internal/store: For domain models and data access.
 * - pkg/rabbitmq: For event publishing.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/quickbank/account-service/internal/domain"
	"github.com/quickbank/account-service/internal/store"
	"github.com/quickbank/account-service/pkg/rabbitmq"
)

// DefaultWithdrawMaxRetries bounds the compare-and-update loop when no
// explicit bound is configured.
const DefaultWithdrawMaxRetries = 5

// LedgerService provides the core account and balance operations.
type LedgerService struct {
	repo               store.AccountRepository
	eventProducer      rabbitmq.Publisher
	eventExchange      string
	withdrawMaxRetries int
}

// NewLedgerService creates a new ledger service instance.
func NewLedgerService(repo store.AccountRepository, producer rabbitmq.Publisher, eventExchange string, withdrawMaxRetries int) *LedgerService {
	if withdrawMaxRetries <= 0 {
		withdrawMaxRetries = DefaultWithdrawMaxRetries
	}
	return &LedgerService{
		repo:               repo,
		eventProducer:      producer,
		eventExchange:      eventExchange,
		withdrawMaxRetries: withdrawMaxRetries,
	}
}

// RegisterInput carries the fields required to open an account.
type RegisterInput struct {
	AccountNumber     string
	AccountHolderName string
	PIN               string
	PhoneNumber       string
}

// Register opens a new account with the opening balance and returns its
// summary. All four fields are required.
func (s *LedgerService) Register(ctx context.Context, input RegisterInput) (*domain.AccountSummary, error) {
	input.AccountNumber = strings.TrimSpace(input.AccountNumber)
	input.AccountHolderName = strings.TrimSpace(input.AccountHolderName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	switch {
	case input.AccountNumber == "":
		return nil, fmt.Errorf("%w: account_number is required", domain.ErrValidation)
	case input.AccountHolderName == "":
		return nil, fmt.Errorf("%w: account_holder_name is required", domain.ErrValidation)
	case input.PIN == "":
		return nil, fmt.Errorf("%w: pin is required", domain.ErrValidation)
	case input.PhoneNumber == "":
		return nil, fmt.Errorf("%w: phone_number is required", domain.ErrValidation)
	}

	pinHash, err := domain.HashPIN(input.PIN)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	account := &domain.Account{
		AccountNumber:     input.AccountNumber,
		AccountHolderName: input.AccountHolderName,
		PINHash:           pinHash,
		PhoneNumber:       input.PhoneNumber,
		Balance:           domain.OpeningBalance,
	}

	created, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, s.mapStoreError(err)
	}
	log.Printf("Registered account %s for %s", created.AccountNumber, created.AccountHolderName)

	s.publish(ctx, "account.created", domain.AccountCreatedEvent{
		AccountNumber:     created.AccountNumber,
		AccountHolderName: created.AccountHolderName,
		OpeningBalance:    created.Balance,
		CreatedAt:         created.CreatedAt,
	})

	return created.Summary(), nil
}

// Authenticate verifies an account number and PIN pair. A missing account and
// a wrong PIN yield the identical error, so the response never reveals
// whether the account exists.
func (s *LedgerService) Authenticate(ctx context.Context, accountNumber, pin string) (*domain.AccountSummary, error) {
	accountNumber = strings.TrimSpace(accountNumber)

	account, err := s.repo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a comparison so the miss path costs the same as a
			// wrong PIN.
			domain.BurnPINComparison(pin)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, s.mapStoreError(err)
	}

	if !domain.VerifyPIN(account.PINHash, pin) {
		return nil, domain.ErrInvalidCredentials
	}

	return account.Summary(), nil
}

// GetDetails returns the profile view of an account. Pure read; the balance
// it reports may change immediately after return.
func (s *LedgerService) GetDetails(ctx context.Context, accountNumber string) (*domain.AccountProfile, error) {
	account, err := s.repo.FindByAccountNumber(ctx, strings.TrimSpace(accountNumber))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, s.mapStoreError(err)
	}
	return account.Profile(), nil
}

// Withdraw debits amount from the account and returns the updated balance.
//
// The loop is the one non-trivial algorithm in this service: read the current
// balance, decide, then attempt a conditional write that commits only if the
// balance is still what we read. A conflict means a concurrent writer won the
// race; re-read and try again, up to the configured bound.
func (s *LedgerService) Withdraw(ctx context.Context, accountNumber string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	accountNumber = strings.TrimSpace(accountNumber)

	for attempt := 0; attempt < s.withdrawMaxRetries; attempt++ {
		account, err := s.repo.FindByAccountNumber(ctx, accountNumber)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return 0, domain.ErrAccountNotFound
			}
			return 0, s.mapStoreError(err)
		}

		if account.Balance < amount {
			return 0, domain.ErrInsufficientBalance
		}

		updated, err := s.repo.CompareAndUpdateBalance(ctx, accountNumber, account.Balance, account.Balance-amount)
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				log.Printf("Withdraw conflict on account %s (attempt %d), retrying", accountNumber, attempt+1)
				continue
			}
			if errors.Is(err, store.ErrNotFound) {
				return 0, domain.ErrAccountNotFound
			}
			return 0, s.mapStoreError(err)
		}

		s.publish(ctx, "account.debited", domain.AccountDebitedEvent{
			AccountNumber:  updated.AccountNumber,
			Amount:         amount,
			UpdatedBalance: updated.Balance,
			DebitedAt:      time.Now(),
		})
		return updated.Balance, nil
	}

	log.Printf("Withdraw on account %s exhausted %d attempts under contention", accountNumber, s.withdrawMaxRetries)
	return 0, domain.ErrContention
}

// mapStoreError translates storage-level failures into the domain taxonomy.
// Anything the store could not classify is surfaced as storage unavailable;
// nothing leaks past this boundary unmapped.
func (s *LedgerService) mapStoreError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}

// publish sends an event to the broker. Publishing is best-effort: the
// durable write already committed, so a broker failure is logged and the
// operation still succeeds.
func (s *LedgerService) publish(ctx context.Context, routingKey string, body interface{}) {
	if s.eventProducer == nil {
		return
	}
	if err := s.eventProducer.Publish(ctx, s.eventExchange, routingKey, body); err != nil {
		log.Printf("Failed to publish %s event: %v", routingKey, err)
	}
}
