package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avelsk/bankledger/pkg/domain"
	accountdomain "github.com/avelsk/bankledger/pkg/domain/account"
	"github.com/avelsk/bankledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository over the given session.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// GetForUpdate resolves a user's account under SELECT ... FOR UPDATE. The
// lock is held until the enclosing transaction ends; the transaction-local
// lock_timeout set by the UoW bounds the wait.
func (r *accountRepository) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
) (*accountdomain.Account, error) {
	var row Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, MapError(err)
	}
	return mapRowToAccount(&row), nil
}

func (r *accountRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*accountdomain.Account, error) {
	var row Account
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, MapError(err)
	}
	return mapRowToAccount(&row), nil
}

func (r *accountRepository) All(ctx context.Context) ([]*accountdomain.Account, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, MapError(err)
	}
	accounts := make([]*accountdomain.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, mapRowToAccount(&rows[i]))
	}
	return accounts, nil
}

func (r *accountRepository) Create(ctx context.Context, a *accountdomain.Account) error {
	row := Account{
		ID:             a.ID,
		UserID:         a.UserID,
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	return MapError(r.db.WithContext(ctx).Create(&row).Error)
}

// SaveAll persists the given accounts within the current transaction. Each
// row update is guarded by the version read earlier: a zero-row update means
// another writer got there first, which fails the whole batch with
// ErrConflict and lets the transaction roll back. InitialBalance is never
// written after creation.
func (r *accountRepository) SaveAll(
	ctx context.Context,
	accounts ...*accountdomain.Account,
) error {
	now := time.Now().UTC()
	for _, a := range accounts {
		res := r.db.WithContext(ctx).Model(&Account{}).
			Where("id = ? AND version = ?", a.ID, a.Version).
			Updates(map[string]any{
				"balance":    a.Balance,
				"version":    a.Version + 1,
				"updated_at": now,
			})
		if res.Error != nil {
			return MapError(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrConflict
		}
	}
	for _, a := range accounts {
		a.Version++
		a.UpdatedAt = now
	}
	return nil
}

func mapRowToAccount(row *Account) *accountdomain.Account {
	return accountdomain.NewFromData(
		row.ID,
		row.UserID,
		row.Balance,
		row.InitialBalance,
		row.Version,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
