package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelsk/bankledger/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and hands out repositories bound to
// the same session, so every operation inside Do shares one transaction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a default-isolation transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.DoWith(ctx, repository.TxOptions{}, fn)
}

// DoWith runs fn in a transaction shaped by opts. Serializable selects the
// serializable isolation level, Timeout bounds the whole transaction, and
// LockWait bounds row-lock acquisition via a transaction-local lock_timeout
// so contention surfaces as a retryable conflict instead of a hang.
func (u *UoW) DoWith(
	ctx context.Context,
	opts repository.TxOptions,
	fn func(uow repository.UnitOfWork) error,
) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	txOpts := &sql.TxOptions{}
	if opts.Serializable {
		txOpts.Isolation = sql.LevelSerializable
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.LockWait > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", opts.LockWait.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(&UoW{db: u.db, tx: tx})
	}, txOpts)
	return MapError(err)
}

// AccountRepository returns the account repository bound to the current
// transaction.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// UserRepository returns the user repository bound to the current
// transaction.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}
