package webapi

import (
	accountsvc "github.com/avelsk/bankledger/pkg/service/account"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRoutes registers the transfer and balance endpoints.
func AccountRoutes(app *fiber.App, svc *accountsvc.Service) {
	app.Post("/transfer", Identity(), Transfer(svc))
	app.Get("/balance", Identity(), Balance(svc))
}

// Balance returns a Fiber handler that reads the caller's account.
func Balance(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Balance(c.Context(), CallerID(c))
		if err != nil {
			return DomainErrorJSON(c, "Couldn't read balance", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Balance", a)
	}
}

// Transfer returns a Fiber handler that moves funds from the caller's
// account to the target user's account.
func Transfer(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req TransferRequest
		if err := c.BodyParser(&req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", err.Error())
		}
		if req.TransferTo == uuid.Nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", "transfer_to is required")
		}
		amount, err := decimal.NewFromString(req.Value)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid request body", "value must be a decimal number")
		}

		if err := svc.Transfer(c.Context(), CallerID(c), req.TransferTo, amount); err != nil {
			return DomainErrorJSON(c, "Transfer failed", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", nil)
	}
}
