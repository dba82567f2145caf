package repos

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backoffice/internal/domain"
	"backoffice/internal/store"
)

type ProductRepo struct {
	c   *collection[domain.Product]
	now func() time.Time
}

func NewProductRepo(b store.Backend, now func() time.Time) *ProductRepo {
	if now == nil {
		now = time.Now
	}
	return &ProductRepo{c: newCollection[domain.Product](b, store.Products), now: now}
}

type ProductDraft struct {
	Name     string
	SKU      string
	Category string
	Price    decimal.Decimal
	Discount decimal.Decimal
	Stock    int
	Status   domain.ProductStatus
	Author   string
	Image    string
	Featured bool
}

// ProductPatch holds the fields an update overwrites; nil means keep.
type ProductPatch struct {
	Name     *string
	SKU      *string
	Category *string
	Price    *decimal.Decimal
	Discount *decimal.Decimal
	Stock    *int
	Status   *domain.ProductStatus
	Author   *string
	Image    *string
	Featured *bool
}

var hundred = decimal.NewFromInt(100)

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.c.all(ctx)
}

func (r *ProductRepo) Get(ctx context.Context, id int) (domain.Product, error) {
	items, err := r.c.all(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	if i := indexProduct(items, id); i >= 0 {
		return items[i], nil
	}
	return domain.Product{}, domain.ErrNotFound
}

// Featured returns featured products, newest first. Products without a
// creation time sort last.
func (r *ProductRepo) Featured(ctx context.Context) ([]domain.Product, error) {
	items, err := r.c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(items))
	for _, p := range items {
		if p.Featured {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt, out[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out, nil
}

func (r *ProductRepo) Create(ctx context.Context, d ProductDraft) (domain.Product, error) {
	var created domain.Product
	err := r.c.update(ctx, func(items []domain.Product) ([]domain.Product, error) {
		now := r.now()
		p := domain.Product{
			ID:        nextIntID(items, func(p domain.Product) int { return p.ID }),
			Name:      strings.TrimSpace(d.Name),
			SKU:       strings.TrimSpace(d.SKU),
			Category:  strings.TrimSpace(d.Category),
			Price:     d.Price,
			Discount:  d.Discount,
			Stock:     d.Stock,
			Status:    d.Status,
			Author:    strings.TrimSpace(d.Author),
			Image:     strings.TrimSpace(d.Image),
			Featured:  d.Featured,
			CreatedAt: &now,
			UpdatedAt: &now,
		}
		if p.Status == "" {
			p.Status = domain.ProductInStock
		}
		if err := checkProduct(p); err != nil {
			return nil, err
		}
		if p.SKU == "" {
			p.SKU = uniqueSKU(items)
		} else if skuTaken(items, p.SKU, 0) {
			return nil, domain.Invalid("sku", "SKU already exists")
		}
		created = p
		return append(items, p), nil
	})
	return created, err
}

func (r *ProductRepo) Update(ctx context.Context, id int, patch ProductPatch) (domain.Product, error) {
	var updated domain.Product
	err := r.c.update(ctx, func(items []domain.Product) ([]domain.Product, error) {
		i := indexProduct(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		p := items[i]
		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Category != nil {
			p.Category = strings.TrimSpace(*patch.Category)
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Discount != nil {
			p.Discount = *patch.Discount
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Author != nil {
			p.Author = strings.TrimSpace(*patch.Author)
		}
		if patch.Image != nil {
			p.Image = strings.TrimSpace(*patch.Image)
		}
		if patch.Featured != nil {
			p.Featured = *patch.Featured
		}
		if patch.SKU != nil {
			if sku := strings.TrimSpace(*patch.SKU); sku != "" {
				if skuTaken(items, sku, p.ID) {
					return nil, domain.Invalid("sku", "SKU already exists")
				}
				p.SKU = sku
			}
		}
		if err := checkProduct(p); err != nil {
			return nil, err
		}
		now := r.now()
		p.UpdatedAt = &now
		items[i] = p
		updated = p
		return items, nil
	})
	return updated, err
}

func (r *ProductRepo) Delete(ctx context.Context, id int) (domain.Product, error) {
	var deleted domain.Product
	err := r.c.update(ctx, func(items []domain.Product) ([]domain.Product, error) {
		i := indexProduct(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		deleted = items[i]
		return append(items[:i], items[i+1:]...), nil
	})
	return deleted, err
}

// Reserve takes qty units of stock per product id, all or nothing.
func (r *ProductRepo) Reserve(ctx context.Context, qty map[int]int) ([]domain.Product, error) {
	var taken []domain.Product
	err := r.c.update(ctx, func(items []domain.Product) ([]domain.Product, error) {
		taken = taken[:0]
		for id, n := range qty {
			i := indexProduct(items, id)
			if i < 0 {
				return nil, domain.Invalid("items", fmt.Sprintf("Unknown product %d", id))
			}
			if items[i].Stock < n {
				return nil, domain.Invalid("items", fmt.Sprintf("Insufficient stock for %s", items[i].Name))
			}
		}
		now := r.now()
		for id, n := range qty {
			i := indexProduct(items, id)
			items[i].Stock -= n
			items[i].UpdatedAt = &now
			taken = append(taken, items[i])
		}
		return items, nil
	})
	return taken, err
}

// Release gives back stock taken by Reserve. Unknown ids are skipped.
func (r *ProductRepo) Release(ctx context.Context, qty map[int]int) error {
	return r.c.update(ctx, func(items []domain.Product) ([]domain.Product, error) {
		now := r.now()
		for id, n := range qty {
			if i := indexProduct(items, id); i >= 0 {
				items[i].Stock += n
				items[i].UpdatedAt = &now
			}
		}
		return items, nil
	})
}

func checkProduct(p domain.Product) error {
	switch {
	case p.Name == "" || p.Category == "":
		return domain.Invalid("name", "Name and category are required")
	case p.Price.IsNegative():
		return domain.Invalid("price", "Price cannot be negative")
	case p.Discount.IsNegative() || p.Discount.GreaterThan(hundred):
		return domain.Invalid("discount", "Discount must be between 0 and 100")
	case p.Stock < 0:
		return domain.Invalid("stock", "Stock cannot be negative")
	case !p.Status.Valid():
		return domain.Invalid("status", "Invalid product status")
	}
	return nil
}

func indexProduct(items []domain.Product, id int) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func skuTaken(items []domain.Product, sku string, exceptID int) bool {
	for _, p := range items {
		if p.ID != exceptID && p.SKU == sku {
			return true
		}
	}
	return false
}

func uniqueSKU(items []domain.Product) string {
	for {
		sku := "SKU-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		if !skuTaken(items, sku, 0) {
			return sku
		}
	}
}
