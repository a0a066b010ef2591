/**
 * @description
 * This file defines the core domain model for an Account within the QuickBank
 * system. It represents the structure of an account as stored in our database.
 *
 * @notes
 * - `AccountNumber` is the primary key: globally unique and immutable after
 *   creation. `Balance` is the only field any operation mutates.
 * - The PIN is never stored in the clear; only its bcrypt hash is persisted.
 *   Response views (`AccountSummary`, `AccountProfile`) never carry the hash.
 */
package domain

import "time"

// OpeningBalance is the balance every account is created with.
const OpeningBalance int64 = 10000

// Account represents a customer's account as persisted in the store.
type Account struct {
	AccountNumber     string    `json:"account_number"`
	AccountHolderName string    `json:"account_holder_name"`
	PINHash           string    `json:"-"`
	PhoneNumber       string    `json:"phone_number"`
	Balance           int64     `json:"account_balance"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AccountSummary is the view returned by registration and authentication.
type AccountSummary struct {
	AccountNumber     string `json:"account_number"`
	AccountHolderName string `json:"account_holder_name"`
	PhoneNumber       string `json:"phone_number"`
	Balance           int64  `json:"account_balance"`
}

// AccountProfile is the narrower view returned by the details lookup.
// It omits the phone number in addition to the PIN.
type AccountProfile struct {
	AccountNumber     string `json:"account_number"`
	AccountHolderName string `json:"account_holder_name"`
	Balance           int64  `json:"account_balance"`
}

// Summary projects the account into its summary view.
func (a *Account) Summary() *AccountSummary {
	return &AccountSummary{
		AccountNumber:     a.AccountNumber,
		AccountHolderName: a.AccountHolderName,
		PhoneNumber:       a.PhoneNumber,
		Balance:           a.Balance,
	}
}

// Profile projects the account into its profile view.
func (a *Account) Profile() *AccountProfile {
	return &AccountProfile{
		AccountNumber:     a.AccountNumber,
		AccountHolderName: a.AccountHolderName,
		Balance:           a.Balance,
	}
}
