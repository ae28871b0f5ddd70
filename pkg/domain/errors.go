package domain

import "errors"

// Error taxonomy for the ledger core. The set is deliberately closed: every
// failure a service can surface maps onto exactly one of these sentinels, and
// the transfer retry predicate matches ErrConflict alone.
var (
	// ErrAccountNotFound is returned when a transfer cannot resolve the
	// sender or receiver to an existing account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientFunds is returned when the sender balance does not
	// cover the transfer amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflict marks a concurrent writer interfering with the current
	// transaction: optimistic version mismatch, lock wait timeout,
	// serialization failure or deadlock. It is the only retryable class.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrPersistence wraps any other storage failure during a mutate/save
	// step. Assumed non-transient and never retried.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidAmount is returned for zero or negative transfer amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrSelfTransfer is returned when sender and receiver are the same user.
	ErrSelfTransfer = errors.New("cannot transfer to own account")

	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is returned when a caller tries to modify a record owned
	// by another user.
	ErrForbidden = errors.New("forbidden")
)
