package domain

import "errors"

var (
	// ErrSubscriptionFailed is returned when subscription to events fails
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrMalformedEvent is returned when a raw event is missing identifying fields or
	// carries an unknown contract, event name or address. It is never retried.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrPrecisionViolation is returned when an amount cannot be represented as a
	// non-negative uint256 integer. The event is quarantined.
	ErrPrecisionViolation = errors.New("precision violation")

	// ErrPersistenceFailure is returned when the ledger could not commit an event.
	// The event is safe to redeliver.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrUserNotFound is returned when no aggregate exists for an address
	ErrUserNotFound = errors.New("user not found")
)
