// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Registry errors
	ErrInvalidIdentifier = errors.New("invalid recipient identifier")
	ErrInvalidAmount     = errors.New("amount must be a positive integer within the configured cap")
	ErrAlreadyActive     = errors.New("recipient is already active")
	ErrNotActive         = errors.New("recipient is not active")
	ErrRecipientNotFound = errors.New("recipient not found")

	// Period ledger errors
	ErrNotFuture      = errors.New("due time must be in the future")
	ErrAlreadySettled = errors.New("period is already settled")
	ErrPeriodNotFound = errors.New("period not found")

	// Disbursement errors
	ErrPeriodSettled     = errors.New("period has already been fully paid")
	ErrTooEarly          = errors.New("period due time has not been reached")
	ErrSystemPaused      = errors.New("disbursement is paused")
	ErrTransferFailed    = errors.New("funds transfer failed")
	ErrInsufficientFunds = errors.New("insufficient treasury balance")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
