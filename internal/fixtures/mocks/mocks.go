// Package mocks provides hand-rolled test doubles for the repository and
// unit-of-work contracts.
package mocks

import (
	"context"
	"errors"
	"time"

	accountdomain "github.com/avelsk/bankledger/pkg/domain/account"
	userdomain "github.com/avelsk/bankledger/pkg/domain/user"
	"github.com/avelsk/bankledger/pkg/repository"
	"github.com/google/uuid"
)

// UnitOfWork is a fake that runs transaction functions inline, against
// whatever repositories are plugged in. It records the options of every
// DoWith call so tests can assert on isolation and timeouts.
type UnitOfWork struct {
	Accounts repository.AccountRepository
	Users    repository.UserRepository

	// BeginErr, when set, fails Do/DoWith before fn runs.
	BeginErr error
	// CommitErr, when set, fails Do/DoWith after fn succeeds, simulating
	// a commit-time conflict.
	CommitErr error

	DoCalls     int
	DoWithCalls []repository.TxOptions
}

// Do runs fn inline against the fake.
func (m *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	m.DoCalls++
	return m.run(fn)
}

// DoWith records opts and runs fn inline against the fake.
func (m *UnitOfWork) DoWith(
	ctx context.Context,
	opts repository.TxOptions,
	fn func(uow repository.UnitOfWork) error,
) error {
	m.DoWithCalls = append(m.DoWithCalls, opts)
	return m.run(fn)
}

func (m *UnitOfWork) run(fn func(uow repository.UnitOfWork) error) error {
	if m.BeginErr != nil {
		return m.BeginErr
	}
	if err := fn(m); err != nil {
		return err
	}
	return m.CommitErr
}

// AccountRepository returns the plugged-in account repository.
func (m *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	if m.Accounts == nil {
		return nil, errors.New("no account repository configured")
	}
	return m.Accounts, nil
}

// UserRepository returns the plugged-in user repository.
func (m *UnitOfWork) UserRepository() (repository.UserRepository, error) {
	if m.Users == nil {
		return nil, errors.New("no user repository configured")
	}
	return m.Users, nil
}

// AccountRepository is a func-field fake of repository.AccountRepository.
type AccountRepository struct {
	GetForUpdateFunc func(ctx context.Context, userID uuid.UUID) (*accountdomain.Account, error)
	GetByUserIDFunc  func(ctx context.Context, userID uuid.UUID) (*accountdomain.Account, error)
	AllFunc          func(ctx context.Context) ([]*accountdomain.Account, error)
	CreateFunc       func(ctx context.Context, a *accountdomain.Account) error
	SaveAllFunc      func(ctx context.Context, accounts ...*accountdomain.Account) error

	SaveAllCalls [][]*accountdomain.Account
}

func (m *AccountRepository) GetForUpdate(ctx context.Context, userID uuid.UUID) (*accountdomain.Account, error) {
	return m.GetForUpdateFunc(ctx, userID)
}

func (m *AccountRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*accountdomain.Account, error) {
	return m.GetByUserIDFunc(ctx, userID)
}

func (m *AccountRepository) All(ctx context.Context) ([]*accountdomain.Account, error) {
	return m.AllFunc(ctx)
}

func (m *AccountRepository) Create(ctx context.Context, a *accountdomain.Account) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, a)
}

func (m *AccountRepository) SaveAll(ctx context.Context, accounts ...*accountdomain.Account) error {
	m.SaveAllCalls = append(m.SaveAllCalls, accounts)
	if m.SaveAllFunc == nil {
		return nil
	}
	return m.SaveAllFunc(ctx, accounts...)
}

// UserRepository is a func-field fake of repository.UserRepository.
type UserRepository struct {
	GetFunc    func(ctx context.Context, id uuid.UUID) (*userdomain.User, error)
	CreateFunc func(ctx context.Context, u *userdomain.User) error
	SearchFunc func(ctx context.Context, f repository.UserSearchFilter, page, size int) ([]*userdomain.User, error)

	GetEmailFunc    func(ctx context.Context, id uuid.UUID) (*userdomain.EmailData, error)
	AddEmailFunc    func(ctx context.Context, e *userdomain.EmailData) error
	UpdateEmailFunc func(ctx context.Context, e *userdomain.EmailData) error
	DeleteEmailFunc func(ctx context.Context, id uuid.UUID) error

	GetPhoneFunc    func(ctx context.Context, id uuid.UUID) (*userdomain.PhoneData, error)
	AddPhoneFunc    func(ctx context.Context, p *userdomain.PhoneData) error
	UpdatePhoneFunc func(ctx context.Context, p *userdomain.PhoneData) error
	DeletePhoneFunc func(ctx context.Context, id uuid.UUID) error

	SearchCalls int
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	return m.GetFunc(ctx, id)
}

func (m *UserRepository) Create(ctx context.Context, u *userdomain.User) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, u)
}

func (m *UserRepository) Search(
	ctx context.Context,
	f repository.UserSearchFilter,
	page, size int,
) ([]*userdomain.User, error) {
	m.SearchCalls++
	return m.SearchFunc(ctx, f, page, size)
}

func (m *UserRepository) GetEmail(ctx context.Context, id uuid.UUID) (*userdomain.EmailData, error) {
	return m.GetEmailFunc(ctx, id)
}

func (m *UserRepository) AddEmail(ctx context.Context, e *userdomain.EmailData) error {
	if m.AddEmailFunc == nil {
		return nil
	}
	return m.AddEmailFunc(ctx, e)
}

func (m *UserRepository) UpdateEmail(ctx context.Context, e *userdomain.EmailData) error {
	if m.UpdateEmailFunc == nil {
		return nil
	}
	return m.UpdateEmailFunc(ctx, e)
}

func (m *UserRepository) DeleteEmail(ctx context.Context, id uuid.UUID) error {
	if m.DeleteEmailFunc == nil {
		return nil
	}
	return m.DeleteEmailFunc(ctx, id)
}

func (m *UserRepository) GetPhone(ctx context.Context, id uuid.UUID) (*userdomain.PhoneData, error) {
	return m.GetPhoneFunc(ctx, id)
}

func (m *UserRepository) AddPhone(ctx context.Context, p *userdomain.PhoneData) error {
	if m.AddPhoneFunc == nil {
		return nil
	}
	return m.AddPhoneFunc(ctx, p)
}

func (m *UserRepository) UpdatePhone(ctx context.Context, p *userdomain.PhoneData) error {
	if m.UpdatePhoneFunc == nil {
		return nil
	}
	return m.UpdatePhoneFunc(ctx, p)
}

func (m *UserRepository) DeletePhone(ctx context.Context, id uuid.UUID) error {
	if m.DeletePhoneFunc == nil {
		return nil
	}
	return m.DeletePhoneFunc(ctx, id)
}

// Cache is a func-field fake of cache.Cache that records evictions.
type Cache struct {
	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error

	SetCalls          int
	DeletePrefixCalls []string
}

func (m *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc == nil {
		return nil, nil
	}
	return m.GetFunc(ctx, key)
}

func (m *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.SetCalls++
	if m.SetFunc == nil {
		return nil
	}
	return m.SetFunc(ctx, key, value, ttl)
}

func (m *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	m.DeletePrefixCalls = append(m.DeletePrefixCalls, prefix)
	return nil
}
