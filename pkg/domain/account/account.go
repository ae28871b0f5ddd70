// Package account holds the balance-carrying entity of the ledger.
//
// Invariants:
//   - Balance is never negative after a committed operation.
//   - InitialBalance never changes after creation; it is only used as the
//     basis for the accrual ceiling.
//   - All monetary values are fixed-point decimals, never binary floats.
package account

import (
	"time"

	"github.com/avelsk/bankledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the balance-holding record owned by exactly one user.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	// Version is the optimistic concurrency token, incremented on every
	// successful write.
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// New creates an account for the given user with balance == initialBalance.
func New(userID uuid.UUID, initialBalance decimal.Decimal) (*Account, error) {
	if initialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	now := time.Now().UTC()
	return &Account{
		ID:             uuid.New(),
		UserID:         userID,
		Balance:        initialBalance,
		InitialBalance: initialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// NewFromData hydrates an account from stored data.
func NewFromData(
	id, userID uuid.UUID,
	balance, initialBalance decimal.Decimal,
	version int64,
	created, updated time.Time,
) *Account {
	return &Account{
		ID:             id,
		UserID:         userID,
		Balance:        balance,
		InitialBalance: initialBalance,
		Version:        version,
		CreatedAt:      created,
		UpdatedAt:      updated,
	}
}

// Debit removes amount from the balance.
func (a *Account) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Accrue grows the balance by growthFactor, clamped to
// initialBalance * capMultiplier. It reports whether the balance changed.
// An account at or above its ceiling is left untouched; accrual never
// shrinks a balance.
func (a *Account) Accrue(growthFactor, capMultiplier decimal.Decimal) bool {
	ceiling := a.InitialBalance.Mul(capMultiplier)
	if ceiling.LessThanOrEqual(a.Balance) {
		return false
	}
	grown := a.Balance.Mul(growthFactor)
	if grown.GreaterThan(ceiling) {
		grown = ceiling
	}
	if grown.Equal(a.Balance) {
		return false
	}
	a.Balance = grown
	return true
}
