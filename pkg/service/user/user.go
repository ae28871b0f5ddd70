// Package user provides user search and contact-record management. Search
// results are cached; every contact mutation evicts the cache.
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelsk/bankledger/pkg/cache"
	"github.com/avelsk/bankledger/pkg/domain"
	accountdomain "github.com/avelsk/bankledger/pkg/domain/account"
	userdomain "github.com/avelsk/bankledger/pkg/domain/user"
	"github.com/avelsk/bankledger/pkg/repository"
	"github.com/shopspring/decimal"
)

const searchCachePrefix = "users:search:"

// Service provides business logic for user operations.
type Service struct {
	uow      repository.UnitOfWork
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// New creates a Service with a UnitOfWork, a result cache and logger.
func New(
	uow repository.UnitOfWork,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cache: c, cacheTTL: cacheTTL, logger: logger}
}

// Create creates a user together with its account. The account starts with
// balance == initialBalance.
func (s *Service) Create(
	ctx context.Context,
	name string,
	dateOfBirth time.Time,
	initialBalance decimal.Decimal,
) (u *userdomain.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		u = userdomain.New(name, dateOfBirth)
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("%w: saving user: %v", domain.ErrPersistence, err)
		}
		a, err := accountdomain.New(u.ID, initialBalance)
		if err != nil {
			return err
		}
		return accounts.Create(ctx, a)
	})
	if err != nil {
		u = nil
	}
	return
}

// Search returns users matching the filter, offset-paged. Results are served
// from the cache when a previous identical query is still fresh.
func (s *Service) Search(
	ctx context.Context,
	f repository.UserSearchFilter,
	page, size int,
) ([]*userdomain.User, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	key := searchKey(f, page, size)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("user search cache read failed", "error", err)
	} else if cached != nil {
		var users []*userdomain.User
		if err := json.Unmarshal(cached, &users); err == nil {
			return users, nil
		}
	}

	var users []*userdomain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		users, err = repo.Search(ctx, f, page, size)
		return err
	})
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.Warn("user search cache write failed", "error", err)
		}
	}
	return users, nil
}

func searchKey(f repository.UserSearchFilter, page, size int) string {
	born := ""
	if !f.BornAfter.IsZero() {
		born = f.BornAfter.Format("2006-01-02")
	}
	return fmt.Sprintf("%s%s|%s|%s|%s|%d|%d",
		searchCachePrefix, f.Name, f.Email, f.Phone, born, page, size)
}

func (s *Service) evictSearchCache(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, searchCachePrefix); err != nil {
		s.logger.Warn("user search cache eviction failed", "error", err)
	}
}
