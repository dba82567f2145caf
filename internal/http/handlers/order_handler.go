package handlers

import (
	"github.com/gofiber/fiber/v2"

	"backoffice/internal/domain"
	"backoffice/internal/log"
	"backoffice/internal/repos"
	"backoffice/internal/services"
	"backoffice/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type orderLineBody struct {
	ProductID int `json:"productId" validate:"required,gte=1"`
	Quantity  int `json:"quantity" validate:"required,gte=1"`
}

type orderCreateBody struct {
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail" validate:"omitempty,email"`
	Items           []orderLineBody      `json:"items" validate:"dive"`
	PaymentStatus   domain.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=Paid Pending Failed Refunded"`
	PaymentMethod   string               `json:"paymentMethod"`
	ShippingAddress string               `json:"shippingAddress"`
}

type orderUpdateBody struct {
	CustomerName    *string               `json:"customerName"`
	CustomerEmail   *string               `json:"customerEmail" validate:"omitempty,email"`
	Status          *domain.OrderStatus   `json:"status" validate:"omitempty,oneof=Pending Processing Shipped Delivered Cancelled"`
	PaymentStatus   *domain.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=Paid Pending Failed Refunded"`
	PaymentMethod   *string               `json:"paymentMethod"`
	ShippingAddress *string               `json:"shippingAddress"`
	TrackingNumber  *string               `json:"trackingNumber"`
}

type statusBody struct {
	Status         *domain.OrderStatus   `json:"status" validate:"omitempty,oneof=Pending Processing Shipped Delivered Cancelled"`
	PaymentStatus  *domain.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=Paid Pending Failed Refunded"`
	TrackingNumber *string               `json:"trackingNumber"`
}

func orderParam(c *fiber.Ctx) (string, bool, error) {
	id, valid := validate.OrderID(c.Params("id"))
	if !valid {
		return "", false, fail(c, fiber.StatusNotFound, orderOne, "Order not found")
	}
	return id, true, nil
}

// GET /orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	items, err := h.Orders.List(c.UserContext())
	if err != nil {
		return failErr(c, "order.list", orderList, err)
	}
	return ok(c, fiber.StatusOK, orderList.key, items)
}

// GET /orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, valid, err := orderParam(c)
	if !valid {
		return err
	}
	o, err := h.Orders.Get(c.UserContext(), id)
	if err != nil {
		return failErr(c, "order.get", orderOne, err)
	}
	return ok(c, fiber.StatusOK, orderOne.key, o)
}

// POST /orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in orderCreateBody
	if valid, err := bind(c, orderOne, &in); !valid {
		return err
	}
	lines := make([]services.OrderLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, services.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	o, err := h.Orders.Place(c.UserContext(), services.PlaceOrder{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		Lines:           lines,
		PaymentStatus:   in.PaymentStatus,
		PaymentMethod:   in.PaymentMethod,
		ShippingAddress: in.ShippingAddress,
	})
	if err != nil {
		return failErr(c, "order.create", orderOne, err)
	}
	log.Audit(c, "order.create", map[string]any{"order_id": o.ID, "total": o.Total.String()})
	return ok(c, fiber.StatusCreated, orderOne.key, o)
}

// PUT /orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, valid, err := orderParam(c)
	if !valid {
		return err
	}
	var in orderUpdateBody
	if valid, err := bind(c, orderOne, &in); !valid {
		return err
	}
	o, err := h.Orders.Update(c.UserContext(), id, repos.OrderPatch{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		Status:          in.Status,
		PaymentStatus:   in.PaymentStatus,
		PaymentMethod:   in.PaymentMethod,
		ShippingAddress: in.ShippingAddress,
		TrackingNumber:  in.TrackingNumber,
	})
	if err != nil {
		return failErr(c, "order.update", orderOne, err)
	}
	log.Audit(c, "order.update", map[string]any{"order_id": o.ID})
	return ok(c, fiber.StatusOK, orderOne.key, o)
}

// PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, valid, err := orderParam(c)
	if !valid {
		return err
	}
	var in statusBody
	if valid, err := bind(c, orderOne, &in); !valid {
		return err
	}
	o, err := h.Orders.UpdateStatus(c.UserContext(), id, services.StatusChange{
		Status:         in.Status,
		PaymentStatus:  in.PaymentStatus,
		TrackingNumber: in.TrackingNumber,
	})
	if err != nil {
		return failErr(c, "order.status", orderOne, err)
	}
	log.Audit(c, "order.status", map[string]any{"order_id": o.ID, "status": string(o.Status)})
	return ok(c, fiber.StatusOK, orderOne.key, o)
}

// DELETE /orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, valid, err := orderParam(c)
	if !valid {
		return err
	}
	o, err := h.Orders.Delete(c.UserContext(), id)
	if err != nil {
		return failErr(c, "order.delete", orderOne, err)
	}
	log.Audit(c, "order.delete", map[string]any{"order_id": o.ID})
	return ok(c, fiber.StatusOK, orderOne.key, o)
}
