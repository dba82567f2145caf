package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"backoffice/internal/domain"
	applog "backoffice/internal/log"
	"backoffice/internal/services"
	"backoffice/internal/validate"
)

const msgInternal = "Internal server error"

// envelope names the payload key of a response and its failure value:
// null for a single entity, [] for a list.
type envelope struct {
	key   string
	empty any
	noun  string
}

var (
	productOne  = envelope{key: "product", noun: "Product"}
	productList = envelope{key: "products", empty: []any{}, noun: "Product"}
	orderOne    = envelope{key: "order", noun: "Order"}
	orderList   = envelope{key: "orders", empty: []any{}, noun: "Order"}
	userOne     = envelope{key: "user", noun: "User"}
	userList    = envelope{key: "users", empty: []any{}, noun: "User"}
)

func ok(c *fiber.Ctx, status int, key string, v any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, key: v})
}

func fail(c *fiber.Ctx, status int, env envelope, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg, env.key: env.empty})
}

// failErr maps err onto the error taxonomy. Anything unrecognised is a
// storage fault: logged in full, answered with a generic 500.
func failErr(c *fiber.Ctx, action string, env envelope, err error) error {
	if ve, isVE := domain.AsValidation(err); isVE {
		return fail(c, fiber.StatusBadRequest, env, ve.Message)
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, env, env.noun+" not found")
	case errors.Is(err, domain.ErrForbidden):
		applog.Security(c, action+".forbidden", nil)
		return fail(c, fiber.StatusForbidden, env, "Forbidden")
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, services.ErrBadCredentials):
		return fail(c, fiber.StatusUnauthorized, env, "Invalid email or password")
	case errors.Is(err, services.ErrInactive):
		return fail(c, fiber.StatusForbidden, env, "Account is not active")
	}
	applog.Error(c, action+".fail", err, nil)
	return fail(c, fiber.StatusInternalServerError, env, msgInternal)
}

// bind decodes the JSON body into dst and checks its validate tags.
func bind(c *fiber.Ctx, env envelope, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, fail(c, fiber.StatusBadRequest, env, "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		if ve, isVE := domain.AsValidation(err); isVE {
			return false, fail(c, fiber.StatusBadRequest, env, ve.Message)
		}
		return false, err
	}
	return true, nil
}

func intParam(c *fiber.Ctx, env envelope) (int, bool, error) {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		return 0, false, fail(c, fiber.StatusNotFound, env, env.noun+" not found")
	}
	return id, true, nil
}

// ErrorHandler answers errors that escaped a handler without leaking details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgInternal
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "message": msg, "data": nil})
}
