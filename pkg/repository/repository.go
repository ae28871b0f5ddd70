// Package repository defines the data-access contracts consumed by the
// services. Implementations live in infra/repository.
package repository

import (
	"context"
	"time"

	"github.com/avelsk/bankledger/pkg/domain/account"
	"github.com/avelsk/bankledger/pkg/domain/user"
	"github.com/google/uuid"
)

// AccountRepository defines account data access. All methods operate within
// the transaction of the UnitOfWork that produced the repository.
type AccountRepository interface {
	// GetForUpdate resolves a user's account under an exclusive row lock.
	// The lock is held until the enclosing transaction commits or rolls
	// back; a bounded lock wait turns contention into domain.ErrConflict
	// instead of an unbounded block.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*account.Account, error)
	// GetByUserID resolves a user's account without locking it.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*account.Account, error)
	// All returns every account. The accrual scan iterates the full set.
	All(ctx context.Context) ([]*account.Account, error)
	// Create persists a new account row.
	Create(ctx context.Context, a *account.Account) error
	// SaveAll persists the given accounts atomically within the current
	// transaction. Each row write carries an optimistic version check; any
	// mismatch fails the whole batch with domain.ErrConflict.
	SaveAll(ctx context.Context, accounts ...*account.Account) error
}

// UserSearchFilter narrows a user search. Zero values mean "no constraint".
type UserSearchFilter struct {
	// Name matches as a prefix.
	Name string
	// Email and Phone match exactly against the user's contact records.
	Email string
	Phone string
	// BornAfter keeps users with a later date of birth.
	BornAfter time.Time
}

// UserRepository defines user and contact-record data access.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	// Search returns users matching the filter, offset-paged.
	Search(ctx context.Context, f UserSearchFilter, page, size int) ([]*user.User, error)

	GetEmail(ctx context.Context, id uuid.UUID) (*user.EmailData, error)
	AddEmail(ctx context.Context, e *user.EmailData) error
	UpdateEmail(ctx context.Context, e *user.EmailData) error
	DeleteEmail(ctx context.Context, id uuid.UUID) error

	GetPhone(ctx context.Context, id uuid.UUID) (*user.PhoneData, error)
	AddPhone(ctx context.Context, p *user.PhoneData) error
	UpdatePhone(ctx context.Context, p *user.PhoneData) error
	DeletePhone(ctx context.Context, id uuid.UUID) error
}
