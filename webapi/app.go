// Package webapi exposes the HTTP boundary over the services. The transport
// is intentionally thin: identity arrives pre-verified from the gateway and
// all business rules live in the services.
package webapi

import (
	"time"

	"github.com/avelsk/bankledger/pkg/app"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp builds the Fiber application with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests,
				"Too Many Requests", "Rate limit exceeded")
		},
	}))

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	AccountRoutes(fiberApp, a.AccountService)
	UserRoutes(fiberApp, a.UserService)

	return fiberApp
}
