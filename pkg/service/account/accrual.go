package account

import (
	"context"

	"github.com/avelsk/bankledger/pkg/repository"
	"github.com/google/uuid"
)

// AccrueAll performs one accrual tick: it scans every account and grows each
// balance by the growth factor, clamped to initialBalance * cap multiplier.
// Every account is its own unit of work, so lock contention or a bad row on
// one account never blocks or fails the rest of the scan. Accounts already
// at their ceiling are skipped.
func (s *Service) AccrueAll(ctx context.Context) error {
	var ids []uuid.UUID
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err := repo.All(ctx)
		if err != nil {
			return err
		}
		ids = make([]uuid.UUID, 0, len(accounts))
		for _, a := range accounts {
			ids = append(ids, a.UserID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, userID := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.accrueOne(ctx, userID); err != nil {
			// Reported, never fatal: the next tick picks the account up.
			s.logger.Error("error updating balance for account",
				"user_id", userID, "error", err)
		}
	}
	return nil
}

func (s *Service) accrueOne(ctx context.Context, userID uuid.UUID) error {
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
		a, err := repo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		before := a.Balance
		if !a.Accrue(s.cfg.GrowthFactor, s.cfg.CapMultiplier) {
			return nil
		}
		if err := repo.SaveAll(ctx, a); err != nil {
			return err
		}
		s.logger.Debug("updated balance for account",
			"account_id", a.ID, "from", before, "to", a.Balance)
		return nil
	})
}
