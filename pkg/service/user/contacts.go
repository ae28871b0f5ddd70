package user

import (
	"context"
	"fmt"

	"github.com/avelsk/bankledger/pkg/domain"
	userdomain "github.com/avelsk/bankledger/pkg/domain/user"
	"github.com/avelsk/bankledger/pkg/repository"
	"github.com/google/uuid"
)

// AddEmail attaches a new email address to the caller's user record.
func (s *Service) AddEmail(
	ctx context.Context,
	callerID uuid.UUID,
	email string,
) (*userdomain.EmailData, error) {
	e := &userdomain.EmailData{ID: uuid.New(), UserID: callerID, Email: email}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, callerID); err != nil {
			return err
		}
		if err := repo.AddEmail(ctx, e); err != nil {
			s.logger.Error("error saving email", "user_id", callerID, "error", err)
			return fmt.Errorf("%w: saving email: %v", domain.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.evictSearchCache(ctx)
	s.logger.Info("added email", "user_id", callerID)
	return e, nil
}

// UpdateEmail changes one of the caller's email addresses. Updating a record
// owned by another user fails with ErrForbidden.
func (s *Service) UpdateEmail(
	ctx context.Context,
	callerID, emailID uuid.UUID,
	email string,
) (*userdomain.EmailData, error) {
	var e *userdomain.EmailData
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		e, err = repo.GetEmail(ctx, emailID)
		if err != nil {
			return err
		}
		if e.UserID != callerID {
			s.logger.Error("email does not belong to caller",
				"email_id", emailID, "user_id", callerID)
			return domain.ErrForbidden
		}
		e.Email = email
		if err := repo.UpdateEmail(ctx, e); err != nil {
			return fmt.Errorf("%w: updating email: %v", domain.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.evictSearchCache(ctx)
	return e, nil
}

// DeleteEmail removes one of the caller's email addresses.
func (s *Service) DeleteEmail(
	ctx context.Context,
	callerID, emailID uuid.UUID,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		e, err := repo.GetEmail(ctx, emailID)
		if err != nil {
			return err
		}
		if e.UserID != callerID {
			return domain.ErrForbidden
		}
		if err := repo.DeleteEmail(ctx, emailID); err != nil {
			return fmt.Errorf("%w: deleting email: %v", domain.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.evictSearchCache(ctx)
	s.logger.Info("deleted email", "user_id", callerID, "email_id", emailID)
	return nil
}

// AddPhone attaches a new phone number to the caller's user record.
func (s *Service) AddPhone(
	ctx context.Context,
	callerID uuid.UUID,
	phone string,
) (*userdomain.PhoneData, error) {
	p := &userdomain.PhoneData{ID: uuid.New(), UserID: callerID, Phone: phone}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, callerID); err != nil {
			return err
		}
		if err := repo.AddPhone(ctx, p); err != nil {
			s.logger.Error("error saving phone", "user_id", callerID, "error", err)
			return fmt.Errorf("%w: saving phone: %v", domain.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.evictSearchCache(ctx)
	s.logger.Info("added phone", "user_id", callerID)
	return p, nil
}

// UpdatePhone changes one of the caller's phone numbers.
func (s *Service) UpdatePhone(
	ctx context.Context,
	callerID, phoneID uuid.UUID,
	phone string,
) (*userdomain.PhoneData, error) {
	var p *userdomain.PhoneData
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		p, err = repo.GetPhone(ctx, phoneID)
		if err != nil {
			return err
		}
		if p.UserID != callerID {
			return domain.ErrForbidden
		}
		p.Phone = phone
		if err := repo.UpdatePhone(ctx, p); err != nil {
			return fmt.Errorf("%w: updating phone: %v", domain.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.evictSearchCache(ctx)
	return p, nil
}

// DeletePhone removes one of the caller's phone numbers.
func (s *Service) DeletePhone(
	ctx context.Context,
	callerID, phoneID uuid.UUID,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		p, err := repo.GetPhone(ctx, phoneID)
		if err != nil {
			return err
		}
		if p.UserID != callerID {
			return domain.ErrForbidden
		}
		if err := repo.DeletePhone(ctx, phoneID); err != nil {
			return fmt.Errorf("%w: deleting phone: %v", domain.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.evictSearchCache(ctx)
	s.logger.Info("deleted phone", "user_id", callerID, "phone_id", phoneID)
	return nil
}
