// Package user holds the account-owning user and its contact records.
package user

import (
	"time"

	"github.com/google/uuid"
)

// User owns exactly one account plus any number of email and phone records.
type User struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	DateOfBirth time.Time   `json:"date_of_birth"`
	Emails      []EmailData `json:"emails,omitempty"`
	Phones      []PhoneData `json:"phones,omitempty"`
	CreatedAt   time.Time   `json:"created"`
	UpdatedAt   time.Time   `json:"updated"`
}

// EmailData is a single email address attached to a user.
type EmailData struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// PhoneData is a single phone number attached to a user.
type PhoneData struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Phone  string    `json:"phone"`
}

// New creates a user with the given name and date of birth.
func New(name string, dateOfBirth time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:          uuid.New(),
		Name:        name,
		DateOfBirth: dateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
