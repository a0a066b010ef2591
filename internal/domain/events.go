/**
 * @description
 * This file defines the domain models for events published by the account
 * service. These structs are the contract for messages sent to the message
 * broker (RabbitMQ) after a state change commits.
 *
 * @notes
 * - Publishing is best-effort and happens after the durable write succeeds;
 *   consumers must tolerate missing events, never missing writes.
 */
package domain

import "time"

// AccountCreatedEvent is published after a successful registration.
type AccountCreatedEvent struct {
	AccountNumber     string    `json:"account_number"`
	AccountHolderName string    `json:"account_holder_name"`
	OpeningBalance    int64     `json:"opening_balance"`
	CreatedAt         time.Time `json:"created_at"`
}

// AccountDebitedEvent is published after a successful withdrawal.
type AccountDebitedEvent struct {
	AccountNumber  string    `json:"account_number"`
	Amount         int64     `json:"amount"`
	UpdatedBalance int64     `json:"updated_balance"`
	DebitedAt      time.Time `json:"debited_at"`
}
