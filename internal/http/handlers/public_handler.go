package handlers

import (
	"github.com/gofiber/fiber/v2"

	"backoffice/internal/services"
)

var availabilityOne = envelope{key: "availability", noun: "Product"}

// PublicHandler serves the storefront. None of its routes require auth.
type PublicHandler struct {
	Catalog *services.CatalogService
}

// GET /public/featured-products
func (h *PublicHandler) Featured(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "products", h.Catalog.Featured(c.UserContext()))
}

// GET /public/categories
func (h *PublicHandler) Categories(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "categories", h.Catalog.Categories(c.UserContext()))
}

// GET /public/products/:id/availability
func (h *PublicHandler) Availability(c *fiber.Ctx) error {
	id, valid, err := intParam(c, availabilityOne)
	if !valid {
		return err
	}
	a, err := h.Catalog.Availability(c.UserContext(), id)
	if err != nil {
		return failErr(c, "catalog.availability", availabilityOne, err)
	}
	return ok(c, fiber.StatusOK, availabilityOne.key, a)
}
