package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"backoffice/internal/domain"
	applog "backoffice/internal/log"
	"backoffice/internal/services"
)

const principalKey = "principal"

// RequireAdmin authorizes the Authorization header and binds the admin
// principal to the request.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		switch {
		case err == nil:
			c.Locals(principalKey, p)
			c.Locals("user_id", p.ID)
			return c.Next()
		case errors.Is(err, domain.ErrUnauthenticated):
			applog.Security(c, "access.denied.unauthenticated", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Authentication required", "data": nil})
		case errors.Is(err, domain.ErrForbidden):
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Admin access required", "data": nil})
		default:
			return err
		}
	}
}

func principal(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals(principalKey).(domain.Principal)
	return p
}
