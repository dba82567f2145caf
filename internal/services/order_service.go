package services

import (
	"context"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/log"
	"backoffice/internal/notify"
	"backoffice/internal/repos"
)

type OrderService struct {
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
	Notifier notify.Notifier
}

func NewOrderService(orders *repos.OrderRepo, products *repos.ProductRepo, n notify.Notifier) *OrderService {
	if n == nil {
		n = notify.Discard{}
	}
	return &OrderService{Orders: orders, Products: products, Notifier: n}
}

type OrderLine struct {
	ProductID int
	Quantity  int
}

type PlaceOrder struct {
	CustomerName    string
	CustomerEmail   string
	Lines           []OrderLine
	PaymentStatus   domain.PaymentStatus
	PaymentMethod   string
	ShippingAddress string
}

// Place records an order for catalog products. Stock is taken up front and
// given back if the order cannot be stored. Item names and prices are
// snapshots of the products at this moment.
func (s *OrderService) Place(ctx context.Context, in PlaceOrder) (domain.Order, error) {
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerEmail) == "" {
		return domain.Order{}, domain.Invalid("customerName", "Customer name and email are required")
	}
	if len(in.Lines) == 0 {
		return domain.Order{}, domain.Invalid("items", "Order must contain at least one item")
	}
	qty := make(map[int]int, len(in.Lines))
	for _, l := range in.Lines {
		if l.Quantity < 1 {
			return domain.Order{}, domain.Invalid("items", "Item quantity must be at least 1")
		}
		qty[l.ProductID] += l.Quantity
	}

	taken, err := s.Products.Reserve(ctx, qty)
	if err != nil {
		return domain.Order{}, err
	}
	byID := make(map[int]domain.Product, len(taken))
	for _, p := range taken {
		byID[p.ID] = p
	}
	items := make([]domain.OrderItem, 0, len(in.Lines))
	for _, l := range in.Lines {
		p := byID[l.ProductID]
		items = append(items, domain.OrderItem{ProductID: p.ID, Name: p.Name, Quantity: l.Quantity, Price: p.Price})
	}

	o, err := s.Orders.Create(ctx, repos.OrderDraft{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		Items:           items,
		PaymentStatus:   in.PaymentStatus,
		PaymentMethod:   in.PaymentMethod,
		ShippingAddress: in.ShippingAddress,
	})
	if err != nil {
		if rerr := s.Products.Release(ctx, qty); rerr != nil {
			log.Error(nil, "order.release_stock", rerr, map[string]any{"lines": len(in.Lines)})
		}
		return domain.Order{}, err
	}
	return o, nil
}

// StatusChange is the body of a status update. Status is required.
type StatusChange struct {
	Status         *domain.OrderStatus
	PaymentStatus  *domain.PaymentStatus
	TrackingNumber *string
}

// UpdateStatus changes an order's status and tells the customer. The
// notification is queued; its outcome never affects the result.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, ch StatusChange) (domain.Order, error) {
	if ch.Status == nil || *ch.Status == "" {
		return domain.Order{}, domain.Invalid("status", "Status is required")
	}
	o, err := s.Orders.Update(ctx, id, repos.OrderPatch{
		Status:         ch.Status,
		PaymentStatus:  ch.PaymentStatus,
		TrackingNumber: ch.TrackingNumber,
	})
	if err != nil {
		return domain.Order{}, err
	}
	s.Notifier.Notify(eventFor(o))
	return o, nil
}

// Update merges editable fields. Any change to status, payment status or
// tracking number notifies the customer.
func (s *OrderService) Update(ctx context.Context, id string, patch repos.OrderPatch) (domain.Order, error) {
	before, o, err := s.Orders.Amend(ctx, id, patch)
	if err != nil {
		return domain.Order{}, err
	}
	if fulfilmentChanged(before, o) {
		s.Notifier.Notify(eventFor(o))
	}
	return o, nil
}

func fulfilmentChanged(a, b domain.Order) bool {
	return a.Status != b.Status ||
		a.PaymentStatus != b.PaymentStatus ||
		tracking(a) != tracking(b)
}

func tracking(o domain.Order) string {
	if o.TrackingNumber == nil {
		return ""
	}
	return *o.TrackingNumber
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.Orders.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.Orders.Get(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id string) (domain.Order, error) {
	return s.Orders.Delete(ctx, id)
}

func eventFor(o domain.Order) notify.Event {
	return notify.Event{
		To:             o.CustomerEmail,
		OrderID:        o.ID,
		CustomerName:   o.CustomerName,
		Status:         o.Status,
		PaymentStatus:  o.PaymentStatus,
		TrackingNumber: tracking(o),
	}
}
