// Package app assembles the services from their dependencies.
package app

import (
	"fmt"
	"log/slog"

	"github.com/avelsk/bankledger/pkg/cache"
	"github.com/avelsk/bankledger/pkg/config"
	"github.com/avelsk/bankledger/pkg/repository"
	"github.com/avelsk/bankledger/pkg/retry"
	"github.com/avelsk/bankledger/pkg/scheduler"
	accountsvc "github.com/avelsk/bankledger/pkg/service/account"
	usersvc "github.com/avelsk/bankledger/pkg/service/user"
	"github.com/shopspring/decimal"
)

// Deps contains the external dependencies the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Cache  cache.Cache
	Logger *slog.Logger
}

// App holds the assembled services and the accrual scheduler.
type App struct {
	Deps           *Deps
	Config         *config.App
	UserService    *usersvc.Service
	AccountService *accountsvc.Service
	Accrual        *scheduler.Scheduler
}

// New assembles the application from its dependencies and configuration.
func New(deps *Deps, cfg *config.App) (*App, error) {
	growth, err := decimal.NewFromString(cfg.Accrual.GrowthFactor)
	if err != nil {
		return nil, fmt.Errorf("invalid accrual growth factor: %w", err)
	}
	capMult, err := decimal.NewFromString(cfg.Accrual.CapMultiplier)
	if err != nil {
		return nil, fmt.Errorf("invalid accrual cap multiplier: %w", err)
	}

	accountCfg := accountsvc.Config{
		Policy: retry.Policy{
			MaxAttempts:  cfg.Transfer.MaxAttempts,
			InitialDelay: cfg.Transfer.InitialDelay,
			Multiplier:   cfg.Transfer.Multiplier,
			Logger:       deps.Logger,
		},
		TxTimeout:     cfg.Transfer.TxTimeout,
		LockWait:      cfg.Transfer.LockWait,
		GrowthFactor:  growth,
		CapMultiplier: capMult,
	}

	a := &App{
		Deps:           deps,
		Config:         cfg,
		UserService:    usersvc.New(deps.Uow, deps.Cache, cfg.Redis.TTL, deps.Logger),
		AccountService: accountsvc.New(deps.Uow, accountCfg, deps.Logger),
	}
	a.Accrual = scheduler.New(
		"accrual",
		cfg.Accrual.Interval,
		a.AccountService.AccrueAll,
		deps.Logger,
	)
	return a, nil
}
