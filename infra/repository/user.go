package repository

import (
	"context"
	"errors"

	"github.com/avelsk/bankledger/pkg/domain"
	userdomain "github.com/avelsk/bankledger/pkg/domain/user"
	"github.com/avelsk/bankledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository over the given session.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	var row User
	err := r.db.WithContext(ctx).
		Preload("Emails").
		Preload("Phones").
		First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, MapError(err)
	}
	return mapRowToUser(&row), nil
}

func (r *userRepository) Create(ctx context.Context, u *userdomain.User) error {
	row := User{
		ID:          u.ID,
		Name:        u.Name,
		DateOfBirth: u.DateOfBirth,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	return MapError(r.db.WithContext(ctx).Create(&row).Error)
}

// Search filters users by name prefix, exact email or phone, and date of
// birth, with offset paging. Contact filters join through the contact
// tables, mirroring the persisted layout.
func (r *userRepository) Search(
	ctx context.Context,
	f repository.UserSearchFilter,
	page, size int,
) ([]*userdomain.User, error) {
	q := r.db.WithContext(ctx).Model(&User{}).
		Preload("Emails").
		Preload("Phones")
	if f.Name != "" {
		q = q.Where("users.name LIKE ?", f.Name+"%")
	}
	if !f.BornAfter.IsZero() {
		q = q.Where("users.date_of_birth > ?", f.BornAfter)
	}
	if f.Email != "" {
		q = q.Joins("JOIN email_data ON email_data.user_id = users.id").
			Where("email_data.email = ?", f.Email)
	}
	if f.Phone != "" {
		q = q.Joins("JOIN phone_data ON phone_data.user_id = users.id").
			Where("phone_data.phone = ?", f.Phone)
	}

	var rows []User
	err := q.Order("users.created_at").
		Offset(page * size).
		Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, MapError(err)
	}
	users := make([]*userdomain.User, 0, len(rows))
	for i := range rows {
		users = append(users, mapRowToUser(&rows[i]))
	}
	return users, nil
}

func (r *userRepository) GetEmail(ctx context.Context, id uuid.UUID) (*userdomain.EmailData, error) {
	var row EmailData
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, MapError(err)
	}
	return &userdomain.EmailData{ID: row.ID, UserID: row.UserID, Email: row.Email}, nil
}

func (r *userRepository) AddEmail(ctx context.Context, e *userdomain.EmailData) error {
	row := EmailData{ID: e.ID, UserID: e.UserID, Email: e.Email}
	return MapError(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *userRepository) UpdateEmail(ctx context.Context, e *userdomain.EmailData) error {
	res := r.db.WithContext(ctx).Model(&EmailData{}).
		Where("id = ?", e.ID).
		Update("email", e.Email)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) DeleteEmail(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&EmailData{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetPhone(ctx context.Context, id uuid.UUID) (*userdomain.PhoneData, error) {
	var row PhoneData
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, MapError(err)
	}
	return &userdomain.PhoneData{ID: row.ID, UserID: row.UserID, Phone: row.Phone}, nil
}

func (r *userRepository) AddPhone(ctx context.Context, p *userdomain.PhoneData) error {
	row := PhoneData{ID: p.ID, UserID: p.UserID, Phone: p.Phone}
	return MapError(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *userRepository) UpdatePhone(ctx context.Context, p *userdomain.PhoneData) error {
	res := r.db.WithContext(ctx).Model(&PhoneData{}).
		Where("id = ?", p.ID).
		Update("phone", p.Phone)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) DeletePhone(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&PhoneData{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapRowToUser(row *User) *userdomain.User {
	u := &userdomain.User{
		ID:          row.ID,
		Name:        row.Name,
		DateOfBirth: row.DateOfBirth,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for _, e := range row.Emails {
		u.Emails = append(u.Emails, userdomain.EmailData{ID: e.ID, UserID: e.UserID, Email: e.Email})
	}
	for _, p := range row.Phones {
		u.Phones = append(u.Phones, userdomain.PhoneData{ID: p.ID, UserID: p.UserID, Phone: p.Phone})
	}
	return u
}
