package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Error types for consistent error handling across the ledger.
// Every condition here is recoverable by the caller; handlers translate
// them into user-facing responses.

// ErrInvalidAmount indicates a deposit or withdrawal with a non-positive amount.
type ErrInvalidAmount struct {
	Amount decimal.Decimal
}

func (e *ErrInvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount: %s (must be positive)", e.Amount.StringFixed(2))
}

// ErrInsufficientFunds indicates not enough balance for a withdrawal.
type ErrInsufficientFunds struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: available=%s required=%s",
		e.Available.StringFixed(2), e.Required.StringFixed(2))
}

// ErrLimitExceeded indicates a withdrawal above the per-transaction limit.
type ErrLimitExceeded struct {
	Limit     decimal.Decimal
	Requested decimal.Decimal
}

func (e *ErrLimitExceeded) Error() string {
	return fmt.Sprintf("withdrawal limit exceeded: limit=%s requested=%s",
		e.Limit.StringFixed(2), e.Requested.StringFixed(2))
}

// ErrWithdrawalCapReached indicates the account used up its withdrawal count.
type ErrWithdrawalCapReached struct {
	Cap int
}

func (e *ErrWithdrawalCapReached) Error() string {
	return fmt.Sprintf("withdrawal cap reached: %d withdrawals already used", e.Cap)
}

// ErrInvalidTransaction indicates a transaction of an unrecognized kind.
type ErrInvalidTransaction struct {
	Kind string
}

func (e *ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid transaction kind: %q", e.Kind)
}

// ErrInvalidNationalID indicates a CPF that failed checksum validation.
type ErrInvalidNationalID struct {
	Value string
}

func (e *ErrInvalidNationalID) Error() string {
	return fmt.Sprintf("invalid national id (CPF): %s", e.Value)
}

// ErrDuplicateClient indicates a CPF already registered.
type ErrDuplicateClient struct {
	NationalID string
}

func (e *ErrDuplicateClient) Error() string {
	return fmt.Sprintf("client already registered for CPF %s", e.NationalID)
}

// ErrInvalidDate indicates a birth date that does not parse as dd-mm-yyyy.
type ErrInvalidDate struct {
	Value string
}

func (e *ErrInvalidDate) Error() string {
	return fmt.Sprintf("invalid date %q, expected dd-mm-yyyy", e.Value)
}

// ErrClientNotFound indicates no client is registered for a CPF.
type ErrClientNotFound struct {
	NationalID string
}

func (e *ErrClientNotFound) Error() string {
	return fmt.Sprintf("client not found: %s", e.NationalID)
}

// ErrAccountNotFound indicates no account exists with the given number.
type ErrAccountNotFound struct {
	Number int
}

func (e *ErrAccountNotFound) Error() string {
	return fmt.Sprintf("account not found: %d", e.Number)
}

// ErrNoAccountForClient indicates a client that has not opened an account yet.
type ErrNoAccountForClient struct {
	NationalID string
}

func (e *ErrNoAccountForClient) Error() string {
	return fmt.Sprintf("client %s has no account", e.NationalID)
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}
