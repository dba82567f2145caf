package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"backoffice/internal/domain"
	"backoffice/internal/log"
	"backoffice/internal/repos"
)

type ProductHandler struct {
	Products *repos.ProductRepo
}

type productBody struct {
	Name     *string               `json:"name"`
	SKU      *string               `json:"sku"`
	Category *string               `json:"category"`
	Price    *decimal.Decimal      `json:"price"`
	Discount *decimal.Decimal      `json:"discount"`
	Stock    *int                  `json:"stock" validate:"omitempty,gte=0"`
	Status   *domain.ProductStatus `json:"status" validate:"omitempty,oneof='In Stock' 'Low Stock' 'Out of Stock'"`
	Author   *string               `json:"author"`
	Image    *string               `json:"image" validate:"omitempty,max=2048"`
	Featured *bool                 `json:"featured"`
}

func (b productBody) draft() repos.ProductDraft {
	return repos.ProductDraft{
		Name:     deref(b.Name),
		SKU:      deref(b.SKU),
		Category: deref(b.Category),
		Price:    deref(b.Price),
		Discount: deref(b.Discount),
		Stock:    deref(b.Stock),
		Status:   deref(b.Status),
		Author:   deref(b.Author),
		Image:    deref(b.Image),
		Featured: deref(b.Featured),
	}
}

func (b productBody) patch() repos.ProductPatch {
	return repos.ProductPatch{
		Name:     b.Name,
		SKU:      b.SKU,
		Category: b.Category,
		Price:    b.Price,
		Discount: b.Discount,
		Stock:    b.Stock,
		Status:   b.Status,
		Author:   b.Author,
		Image:    b.Image,
		Featured: b.Featured,
	}
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.Products.List(c.UserContext())
	if err != nil {
		return failErr(c, "product.list", productList, err)
	}
	return ok(c, fiber.StatusOK, productList.key, items)
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, valid, err := intParam(c, productOne)
	if !valid {
		return err
	}
	p, err := h.Products.Get(c.UserContext(), id)
	if err != nil {
		return failErr(c, "product.get", productOne, err)
	}
	return ok(c, fiber.StatusOK, productOne.key, p)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in productBody
	if valid, err := bind(c, productOne, &in); !valid {
		return err
	}
	p, err := h.Products.Create(c.UserContext(), in.draft())
	if err != nil {
		return failErr(c, "product.create", productOne, err)
	}
	log.Audit(c, "product.create", map[string]any{"product_id": p.ID, "sku": p.SKU})
	return ok(c, fiber.StatusCreated, productOne.key, p)
}

// PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, valid, err := intParam(c, productOne)
	if !valid {
		return err
	}
	var in productBody
	if valid, err := bind(c, productOne, &in); !valid {
		return err
	}
	p, err := h.Products.Update(c.UserContext(), id, in.patch())
	if err != nil {
		return failErr(c, "product.update", productOne, err)
	}
	log.Audit(c, "product.update", map[string]any{"product_id": p.ID})
	return ok(c, fiber.StatusOK, productOne.key, p)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, valid, err := intParam(c, productOne)
	if !valid {
		return err
	}
	p, err := h.Products.Delete(c.UserContext(), id)
	if err != nil {
		return failErr(c, "product.delete", productOne, err)
	}
	log.Audit(c, "product.delete", map[string]any{"product_id": p.ID})
	return ok(c, fiber.StatusOK, productOne.key, p)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
