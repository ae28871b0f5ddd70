package repository

import (
	"context"
	"time"
)

// TxOptions controls the transaction a UnitOfWork opens for Do.
type TxOptions struct {
	// Serializable upgrades the transaction to the serializable isolation
	// level. The transfer path requires it; collaborator reads do not.
	Serializable bool
	// Timeout bounds the whole transaction. Zero means no explicit bound.
	Timeout time.Duration
	// LockWait bounds how long a row-lock acquisition may block before the
	// store gives up and reports a retryable conflict. Zero keeps the
	// store default.
	LockWait time.Duration
}

// UnitOfWork runs a function inside a transaction boundary and hands it
// repositories bound to that same transaction. If the function returns an
// error the transaction rolls back; commit-time conflicts surface as
// domain.ErrConflict from Do itself.
type UnitOfWork interface {
	// Do executes fn within a transaction, rolling back on error.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	// DoWith is Do with explicit transaction options.
	DoWith(ctx context.Context, opts TxOptions, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the
	// current transaction.
	AccountRepository() (AccountRepository, error)
	// UserRepository returns the user repository bound to the current
	// transaction.
	UserRepository() (UserRepository, error)
}
