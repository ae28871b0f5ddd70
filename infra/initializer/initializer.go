// Package initializer builds the application dependencies from
// configuration: logger, database connection, unit of work and cache.
package initializer

import (
	"fmt"

	"github.com/avelsk/bankledger/infra"
	infracache "github.com/avelsk/bankledger/infra/cache"
	infrarepo "github.com/avelsk/bankledger/infra/repository"
	"github.com/avelsk/bankledger/pkg/app"
	"github.com/avelsk/bankledger/pkg/config"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	deps := &app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
	}

	if cfg.Redis.Addr != "" {
		logger.Info("using redis cache", "addr", cfg.Redis.Addr)
		deps.Cache = infracache.NewRedisCache(cfg.Redis, logger)
	} else {
		logger.Info("no redis configured, using in-memory cache")
		deps.Cache = infracache.NewMemoryCache()
	}

	return deps, nil
}
