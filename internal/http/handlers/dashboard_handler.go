package handlers

import (
	"github.com/gofiber/fiber/v2"

	"backoffice/internal/services"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

// GET /dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "data", h.Dashboard.Stats(c.UserContext()))
}
