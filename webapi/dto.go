package webapi

import "github.com/google/uuid"

// TransferRequest is the body of POST /transfer.
type TransferRequest struct {
	TransferTo uuid.UUID `json:"transfer_to"`
	Value      string    `json:"value"`
}

// AddEmailRequest is the body of POST /email.
type AddEmailRequest struct {
	Email string `json:"email"`
}

// UpdateEmailRequest is the body of PUT /email.
type UpdateEmailRequest struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// DeleteContactRequest is the body of DELETE /email and DELETE /phone.
type DeleteContactRequest struct {
	ID uuid.UUID `json:"id"`
}

// AddPhoneRequest is the body of POST /phone.
type AddPhoneRequest struct {
	Phone string `json:"phone"`
}

// UpdatePhoneRequest is the body of PUT /phone.
type UpdatePhoneRequest struct {
	ID    uuid.UUID `json:"id"`
	Phone string    `json:"phone"`
}
