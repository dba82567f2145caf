package repos

import (
	"context"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/store"
)

const (
	orderIDPrefix = "ORD-"
	firstOrderNum = 1001
)

type OrderRepo struct {
	c   *collection[domain.Order]
	now func() time.Time
}

func NewOrderRepo(b store.Backend, now func() time.Time) *OrderRepo {
	if now == nil {
		now = time.Now
	}
	return &OrderRepo{c: newCollection[domain.Order](b, store.Orders), now: now}
}

type OrderDraft struct {
	CustomerName    string
	CustomerEmail   string
	Date            time.Time
	Items           []domain.OrderItem
	Status          domain.OrderStatus
	PaymentStatus   domain.PaymentStatus
	PaymentMethod   string
	ShippingAddress string
	TrackingNumber  *string
}

// OrderPatch never touches items or total. A TrackingNumber pointing at ""
// clears the tracking number.
type OrderPatch struct {
	CustomerName    *string
	CustomerEmail   *string
	Status          *domain.OrderStatus
	PaymentStatus   *domain.PaymentStatus
	PaymentMethod   *string
	ShippingAddress *string
	TrackingNumber  *string
}

func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	return r.c.all(ctx)
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	items, err := r.c.all(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	if i := indexOrder(items, id); i >= 0 {
		return items[i], nil
	}
	return domain.Order{}, domain.ErrNotFound
}

// Create stores a new order. Its total is computed here, once.
func (r *OrderRepo) Create(ctx context.Context, d OrderDraft) (domain.Order, error) {
	if strings.TrimSpace(d.CustomerName) == "" || strings.TrimSpace(d.CustomerEmail) == "" {
		return domain.Order{}, domain.Invalid("customerName", "Customer name and email are required")
	}
	if len(d.Items) == 0 {
		return domain.Order{}, domain.Invalid("items", "Order must contain at least one item")
	}
	items := make([]domain.OrderItem, len(d.Items))
	copy(items, d.Items)
	for _, it := range items {
		if it.Quantity < 1 {
			return domain.Order{}, domain.Invalid("items", "Item quantity must be at least 1")
		}
		if it.Price.IsNegative() {
			return domain.Order{}, domain.Invalid("items", "Item price cannot be negative")
		}
	}

	var created domain.Order
	err := r.c.update(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		o := domain.Order{
			ID:              nextOrderID(orders),
			CustomerName:    strings.TrimSpace(d.CustomerName),
			CustomerEmail:   strings.TrimSpace(d.CustomerEmail),
			Date:            d.Date,
			Items:           items,
			Total:           domain.ItemsTotal(items),
			Status:          d.Status,
			PaymentStatus:   d.PaymentStatus,
			PaymentMethod:   strings.TrimSpace(d.PaymentMethod),
			ShippingAddress: strings.TrimSpace(d.ShippingAddress),
			TrackingNumber:  normTracking(d.TrackingNumber),
		}
		if o.Date.IsZero() {
			o.Date = r.now()
		}
		if o.Status == "" {
			o.Status = domain.OrderPending
		}
		if o.PaymentStatus == "" {
			o.PaymentStatus = domain.PaymentPending
		}
		if err := checkOrder(o); err != nil {
			return nil, err
		}
		created = o
		return append(orders, o), nil
	})
	return created, err
}

func (r *OrderRepo) Update(ctx context.Context, id string, patch OrderPatch) (domain.Order, error) {
	_, updated, err := r.Amend(ctx, id, patch)
	return updated, err
}

// Amend applies patch and returns the order as it was before and after, both
// taken under the same lock.
func (r *OrderRepo) Amend(ctx context.Context, id string, patch OrderPatch) (before, after domain.Order, err error) {
	err = r.c.update(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		i := indexOrder(orders, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		before = orders[i]
		o := orders[i]
		if patch.CustomerName != nil {
			o.CustomerName = strings.TrimSpace(*patch.CustomerName)
		}
		if patch.CustomerEmail != nil {
			o.CustomerEmail = strings.TrimSpace(*patch.CustomerEmail)
		}
		if patch.Status != nil {
			o.Status = *patch.Status
		}
		if patch.PaymentStatus != nil {
			o.PaymentStatus = *patch.PaymentStatus
		}
		if patch.PaymentMethod != nil {
			o.PaymentMethod = strings.TrimSpace(*patch.PaymentMethod)
		}
		if patch.ShippingAddress != nil {
			o.ShippingAddress = strings.TrimSpace(*patch.ShippingAddress)
		}
		if patch.TrackingNumber != nil {
			o.TrackingNumber = normTracking(patch.TrackingNumber)
		}
		if o.CustomerName == "" || o.CustomerEmail == "" {
			return nil, domain.Invalid("customerName", "Customer name and email are required")
		}
		if err := checkOrder(o); err != nil {
			return nil, err
		}
		now := r.now()
		o.UpdatedAt = &now
		orders[i] = o
		after = o
		return orders, nil
	})
	if err != nil {
		return domain.Order{}, domain.Order{}, err
	}
	return before, after, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) (domain.Order, error) {
	var deleted domain.Order
	err := r.c.update(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		i := indexOrder(orders, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		deleted = orders[i]
		return append(orders[:i], orders[i+1:]...), nil
	})
	return deleted, err
}

func checkOrder(o domain.Order) error {
	if !o.Status.Valid() {
		return domain.Invalid("status", "Invalid order status")
	}
	if !o.PaymentStatus.Valid() {
		return domain.Invalid("paymentStatus", "Invalid payment status")
	}
	return nil
}

func indexOrder(orders []domain.Order, id string) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func nextOrderID(orders []domain.Order) string {
	next := firstOrderNum
	for _, o := range orders {
		n, err := strconv.Atoi(strings.TrimPrefix(o.ID, orderIDPrefix))
		if err == nil && n >= next {
			next = n + 1
		}
	}
	return orderIDPrefix + strconv.Itoa(next)
}

func normTracking(t *string) *string {
	if t == nil {
		return nil
	}
	v := strings.TrimSpace(*t)
	if v == "" {
		return nil
	}
	return &v
}
