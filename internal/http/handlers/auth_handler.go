package handlers

import (
	"github.com/gofiber/fiber/v2"

	"backoffice/internal/domain"
	"backoffice/internal/log"
	"backoffice/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginBody struct {
	Email    string `json:"email" validate:"omitempty,max=254"`
	Password string `json:"password" validate:"omitempty,max=128"`
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginBody
	if valid, err := bind(c, userOne, &in); !valid {
		return err
	}
	s, err := h.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		if _, isVE := domain.AsValidation(err); !isVE {
			log.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": err.Error()})
		}
		return failErr(c, "auth.login", userOne, err)
	}
	log.Audit(c, "auth.login.success", map[string]any{"user_id": s.User.ID})
	return c.JSON(fiber.Map{"success": true, "user": s.User, "token": s.Token})
}
