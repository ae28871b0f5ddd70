package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelsk/bankledger/pkg/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes that mark a transient conflict with a concurrent
// writer. All three roll the transaction back and are safe to re-run.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// MapError converts storage errors to domain errors, keeping database
// concerns inside the infrastructure layer. It is safe to apply twice: a
// domain error maps to itself.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrPersistence):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Code)
		}
	}

	// A transaction hitting its deadline is aborted by the driver; the
	// caller may retry it from scratch with fresh reads.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: transaction timeout", domain.ErrConflict)
	}

	return err
}
