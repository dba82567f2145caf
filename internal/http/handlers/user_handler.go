package handlers

import (
	"github.com/gofiber/fiber/v2"

	"backoffice/internal/domain"
	"backoffice/internal/log"
	"backoffice/internal/repos"
)

type UserHandler struct {
	Users *repos.UserRepo
}

type userBody struct {
	Name     *string            `json:"name" validate:"omitempty,max=100"`
	Email    *string            `json:"email" validate:"omitempty,email"`
	Password *string            `json:"password" validate:"omitempty,max=128"`
	Role     *domain.Role       `json:"role" validate:"omitempty,oneof=Admin Customer Seller"`
	Status   *domain.UserStatus `json:"status" validate:"omitempty,oneof=Active Inactive Banned Pending"`
	Orders   *int               `json:"orders" validate:"omitempty,gte=0"`
	Verified *bool              `json:"verified"`
}

// GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	items, err := h.Users.List(c.UserContext())
	if err != nil {
		return failErr(c, "user.list", userList, err)
	}
	return ok(c, fiber.StatusOK, userList.key, items)
}

// GET /users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, valid, err := intParam(c, userOne)
	if !valid {
		return err
	}
	u, err := h.Users.Get(c.UserContext(), id)
	if err != nil {
		return failErr(c, "user.get", userOne, err)
	}
	return ok(c, fiber.StatusOK, userOne.key, u)
}

// POST /users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in userBody
	if valid, err := bind(c, userOne, &in); !valid {
		return err
	}
	u, err := h.Users.Create(c.UserContext(), repos.UserDraft{
		Name:     deref(in.Name),
		Email:    deref(in.Email),
		Password: deref(in.Password),
		Role:     deref(in.Role),
		Status:   deref(in.Status),
		Orders:   deref(in.Orders),
		Verified: deref(in.Verified),
	})
	if err != nil {
		return failErr(c, "user.create", userOne, err)
	}
	log.Audit(c, "user.create", map[string]any{"target_id": u.ID, "role": string(u.Role)})
	return ok(c, fiber.StatusCreated, userOne.key, u)
}

// PUT /users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, valid, err := intParam(c, userOne)
	if !valid {
		return err
	}
	var in userBody
	if valid, err := bind(c, userOne, &in); !valid {
		return err
	}
	u, err := h.Users.Update(c.UserContext(), id, repos.UserPatch{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		Status:   in.Status,
		Orders:   in.Orders,
		Verified: in.Verified,
	})
	if err != nil {
		return failErr(c, "user.update", userOne, err)
	}
	log.Audit(c, "user.update", map[string]any{"target_id": u.ID})
	return ok(c, fiber.StatusOK, userOne.key, u)
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, valid, err := intParam(c, userOne)
	if !valid {
		return err
	}
	u, err := h.Users.Delete(c.UserContext(), id, principal(c).ID)
	if err != nil {
		return failErr(c, "user.delete", userOne, err)
	}
	log.Audit(c, "user.delete", map[string]any{"target_id": u.ID})
	return ok(c, fiber.StatusOK, userOne.key, u)
}
