package webapi

import (
	"time"

	"github.com/avelsk/bankledger/pkg/repository"
	usersvc "github.com/avelsk/bankledger/pkg/service/user"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserRoutes registers user search and contact management endpoints.
func UserRoutes(app *fiber.App, svc *usersvc.Service) {
	app.Get("/users", SearchUsers(svc))

	app.Post("/email", Identity(), AddEmail(svc))
	app.Put("/email", Identity(), UpdateEmail(svc))
	app.Delete("/email", Identity(), DeleteEmail(svc))

	app.Post("/phone", Identity(), AddPhone(svc))
	app.Put("/phone", Identity(), UpdatePhone(svc))
	app.Delete("/phone", Identity(), DeletePhone(svc))
}

// SearchUsers returns a handler that lists users filtered by name prefix,
// exact email or phone, and date of birth, with offset paging.
func SearchUsers(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.UserSearchFilter{
			Name:  c.Query("name"),
			Email: c.Query("email"),
			Phone: c.Query("phone"),
		}
		if raw := c.Query("dateOfBirth"); raw != "" {
			born, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest,
					"Invalid query", "dateOfBirth must be YYYY-MM-DD")
			}
			filter.BornAfter = born
		}
		page := c.QueryInt("page", 0)
		size := c.QueryInt("size", 10)

		users, err := svc.Search(c.Context(), filter, page, size)
		if err != nil {
			return DomainErrorJSON(c, "Search failed", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Users found", users)
	}
}

// AddEmail attaches a new email address to the caller.
func AddEmail(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AddEmailRequest
		if err := c.BodyParser(&req); err != nil || req.Email == "" {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", "email is required")
		}
		e, err := svc.AddEmail(c.Context(), CallerID(c), req.Email)
		if err != nil {
			return DomainErrorJSON(c, "Couldn't add email", err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Email added", e)
	}
}

// UpdateEmail changes one of the caller's email addresses.
func UpdateEmail(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UpdateEmailRequest
		if err := c.BodyParser(&req); err != nil || req.ID == uuid.Nil || req.Email == "" {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", "id and email are required")
		}
		e, err := svc.UpdateEmail(c.Context(), CallerID(c), req.ID, req.Email)
		if err != nil {
			return DomainErrorJSON(c, "Couldn't update email", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Email updated", e)
	}
}

// DeleteEmail removes one of the caller's email addresses.
func DeleteEmail(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req DeleteContactRequest
		if err := c.BodyParser(&req); err != nil || req.ID == uuid.Nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", "id is required")
		}
		if err := svc.DeleteEmail(c.Context(), CallerID(c), req.ID); err != nil {
			return DomainErrorJSON(c, "Couldn't delete email", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Email deleted", nil)
	}
}

// AddPhone attaches a new phone number to the caller.
func AddPhone(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AddPhoneRequest
		if err := c.BodyParser(&req); err != nil || req.Phone == "" {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", "phone is required")
		}
		p, err := svc.AddPhone(c.Context(), CallerID(c), req.Phone)
		if err != nil {
			return DomainErrorJSON(c, "Couldn't add phone", err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Phone added", p)
	}
}

// UpdatePhone changes one of the caller's phone numbers.
func UpdatePhone(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UpdatePhoneRequest
		if err := c.BodyParser(&req); err != nil || req.ID == uuid.Nil || req.Phone == "" {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", "id and phone are required")
		}
		p, err := svc.UpdatePhone(c.Context(), CallerID(c), req.ID, req.Phone)
		if err != nil {
			return DomainErrorJSON(c, "Couldn't update phone", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Phone updated", p)
	}
}

// DeletePhone removes one of the caller's phone numbers.
func DeletePhone(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req DeleteContactRequest
		if err := c.BodyParser(&req); err != nil || req.ID == uuid.Nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", "id is required")
		}
		if err := svc.DeletePhone(c.Context(), CallerID(c), req.ID); err != nil {
			return DomainErrorJSON(c, "Couldn't delete phone", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Phone deleted", nil)
	}
}
