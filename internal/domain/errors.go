/**
 * @description
 * This file defines the domain error taxonomy for the account service. Every
 * failure the ledger service can surface is one of these sentinel errors, so
 * callers (the HTTP handlers in particular) can branch with errors.Is without
 * inspecting storage-level errors.
 */
package domain

import "errors"

var (
	// ErrValidation indicates malformed or missing input. Caller's fault,
	// not retryable as submitted.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateAccount indicates a registration against an account
	// number that already exists.
	ErrDuplicateAccount = errors.New("account number already registered")

	// ErrInvalidCredentials indicates an authentication failure. It is
	// deliberately identical for a missing account and a wrong PIN.
	ErrInvalidCredentials = errors.New("invalid account number or PIN")

	// ErrAccountNotFound indicates a lookup or withdrawal against an
	// account number that does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance indicates a withdrawal that would push the
	// balance below zero. The balance is left unchanged.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount indicates a withdrawal amount that is not a
	// positive number.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrContention indicates the withdrawal retry budget was exhausted
	// because concurrent writers kept winning the race. Transient; the
	// caller may retry the whole request.
	ErrContention = errors.New("account is under heavy contention, try again")

	// ErrStorageUnavailable indicates the durable medium could not be
	// reached. Transient; retryable at the transport layer.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
