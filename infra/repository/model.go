// Package repository provides the GORM implementations of the data-access
// contracts in pkg/repository.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is the users table row.
type User struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name        string      `gorm:"type:varchar(500);not null"`
	DateOfBirth time.Time   `gorm:"type:date"`
	Emails      []EmailData `gorm:"foreignKey:UserID"`
	Phones      []PhoneData `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// Account is the accounts table row. Version is the optimistic concurrency
// token checked on every update.
type Account struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Balance        decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	InitialBalance decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Version        int64           `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// EmailData is the email_data table row.
type EmailData struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`
	Email  string    `gorm:"type:varchar(200);uniqueIndex;not null"`
}

// TableName specifies the table name for the EmailData model.
func (EmailData) TableName() string { return "email_data" }

// PhoneData is the phone_data table row.
type PhoneData struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`
	Phone  string    `gorm:"type:varchar(32);uniqueIndex;not null"`
}

// TableName specifies the table name for the PhoneData model.
func (PhoneData) TableName() string { return "phone_data" }

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Account{}, &EmailData{}, &PhoneData{})
}
