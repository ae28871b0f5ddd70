package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const callerIDKey = "callerID"

// Identity resolves the caller's user id from the X-User-ID header. Token
// verification happens upstream at the gateway; by the time a request lands
// here the identity is trusted.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-User-ID")
		if raw == "" {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized,
				"Missing identity", "X-User-ID header is required")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized,
				"Invalid identity", "X-User-ID must be a valid UUID")
		}
		c.Locals(callerIDKey, id)
		return c.Next()
	}
}

// CallerID returns the verified caller id set by the Identity middleware.
func CallerID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(callerIDKey).(uuid.UUID)
	return id
}
