// Package account provides the transfer coordinator and the scheduled
// balance accrual. Both mutate account rows only inside transaction
// boundaries owned by the unit of work.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelsk/bankledger/pkg/domain"
	accountdomain "github.com/avelsk/bankledger/pkg/domain/account"
	"github.com/avelsk/bankledger/pkg/repository"
	"github.com/avelsk/bankledger/pkg/retry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config tunes the transfer transaction and the accrual rule.
type Config struct {
	// Policy absorbs transient lock conflicts around the whole transfer
	// transaction.
	Policy retry.Policy
	// TxTimeout bounds the transfer transaction.
	TxTimeout time.Duration
	// LockWait bounds row-lock acquisition inside the transaction.
	LockWait time.Duration
	// GrowthFactor multiplies each balance on an accrual tick.
	GrowthFactor decimal.Decimal
	// CapMultiplier times the initial balance is the accrual ceiling.
	CapMultiplier decimal.Decimal
}

// DefaultConfig returns the production tuning: 5 attempts backing off from
// 100ms, 30s transaction timeout, 10% growth capped at 2.07x.
func DefaultConfig(logger *slog.Logger) Config {
	return Config{
		Policy:        retry.Default(logger),
		TxTimeout:     30 * time.Second,
		LockWait:      5 * time.Second,
		GrowthFactor:  decimal.RequireFromString("1.10"),
		CapMultiplier: decimal.RequireFromString("2.07"),
	}
}

// Service coordinates transfers and accrual over the account store.
type Service struct {
	uow    repository.UnitOfWork
	cfg    Config
	logger *slog.Logger
}

// New creates a Service with a UnitOfWork, tuning and logger.
func New(uow repository.UnitOfWork, cfg Config, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Transfer moves amount from the caller's account to the target user's
// account as one serializable transaction. Lock conflicts are retried
// transparently up to the policy's attempt budget; all other failures
// surface immediately. On any reported failure nothing is persisted.
func (s *Service) Transfer(
	ctx context.Context,
	fromUserID, toUserID uuid.UUID,
	amount decimal.Decimal,
) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if fromUserID == toUserID {
		return domain.ErrSelfTransfer
	}
	return s.cfg.Policy.Do(ctx, isConflict, func(ctx context.Context) error {
		return s.transferOnce(ctx, fromUserID, toUserID, amount)
	})
}

// Balance returns the current state of the user's account without locking
// the row.
func (s *Service) Balance(
	ctx context.Context,
	userID uuid.UUID,
) (*accountdomain.Account, error) {
	var a *accountdomain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.GetByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) transferOnce(
	ctx context.Context,
	fromUserID, toUserID uuid.UUID,
	amount decimal.Decimal,
) error {
	opts := repository.TxOptions{
		Serializable: true,
		Timeout:      s.cfg.TxTimeout,
		LockWait:     s.cfg.LockWait,
	}
	return s.uow.DoWith(ctx, opts, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		// Both rows are locked in ascending user-id order regardless of
		// transfer direction, so two opposite transfers between the same
		// pair cannot deadlock on each other.
		first, second := fromUserID, toUserID
		if second.String() < first.String() {
			first, second = second, first
		}
		locked := make(map[uuid.UUID]*accountdomain.Account, 2)
		for _, id := range []uuid.UUID{first, second} {
			a, err := repo.GetForUpdate(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrNotFound) {
					role := "sender"
					if id == toUserID {
						role = "receiver"
					}
					s.logger.Error("account not found for transfer",
						"role", role, "user_id", id)
					return fmt.Errorf("%s: %w", role, domain.ErrAccountNotFound)
				}
				return err
			}
			locked[id] = a
		}
		sender := locked[fromUserID]
		receiver := locked[toUserID]

		if sender.Balance.LessThan(amount) {
			s.logger.Warn("insufficient funds for transfer",
				"user_id", fromUserID,
				"balance", sender.Balance,
				"amount", amount)
			return domain.ErrInsufficientFunds
		}

		if err := sender.Debit(amount); err != nil {
			return err
		}
		if err := receiver.Credit(amount); err != nil {
			return err
		}
		if err := repo.SaveAll(ctx, sender, receiver); err != nil {
			if isConflict(err) {
				return err
			}
			s.logger.Error("error processing transfer",
				"from", fromUserID, "to", toUserID, "error", err)
			return fmt.Errorf("%w: processing transfer: %v", domain.ErrPersistence, err)
		}

		s.logger.Info("transfer successful",
			"from", fromUserID,
			"to", toUserID,
			"sender_balance", sender.Balance,
			"receiver_balance", receiver.Balance)
		return nil
	})
}

func isConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict)
}
