package repos

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/domain"
	"backoffice/internal/log"
)

const (
	seedProducts = 25
	seedOrders   = 30
	seedUsers    = 25
)

type SeedOptions struct {
	// Rand drives fixture content; nil means a time-seeded source, so every
	// cold start of an ephemeral store gets different data.
	Rand          *rand.Rand
	Now           func() time.Time
	AdminName     string
	AdminEmail    string
	AdminPassword string
	// UserPassword is shared by all generated non-admin users.
	UserPassword string
}

var (
	seedCategories = []string{"Fiction", "Non-Fiction", "Science", "History", "Children", "Biography", "Fantasy", "Mystery"}
	seedAdjectives = []string{"Silent", "Hidden", "Last", "Golden", "Broken", "Distant", "Secret", "Wild", "Quiet", "Burning"}
	seedNouns      = []string{"River", "Garden", "Empire", "Letter", "Island", "Orchard", "Mirror", "Harbor", "Forest", "Machine"}
	seedFirst      = []string{"Olivia", "Liam", "Emma", "Noah", "Ava", "Lucas", "Mia", "Ethan", "Zoe", "Leo", "Nora", "Omar", "Iris", "Hugo"}
	seedLast       = []string{"Smith", "Garcia", "Nguyen", "Kowalski", "Okafor", "Rossi", "Tanaka", "Dubois", "Silva", "Novak"}
	seedMethods    = []string{"Credit Card", "PayPal", "Bank Transfer", "Cash on Delivery"}
	seedStreets    = []string{"Main St", "Oak Ave", "Maple Rd", "Elm St", "Park Lane", "Cedar Blvd"}
	seedCities     = []string{"Springfield", "Riverton", "Lakeside", "Fairview", "Georgetown"}
	seedDiscounts  = []int64{0, 0, 0, 5, 10, 15, 20, 25}
)

// Seed fills each empty collection with generated sample data: 25 products,
// 30 orders sampled from the products and 25 users with an active admin first.
// Non-empty collections are left untouched.
func Seed(ctx context.Context, s *Store, opts SeedOptions) error {
	rnd := opts.Rand
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	g := &generator{rnd: rnd, now: now()}

	if err := s.Products.c.update(ctx, func(items []domain.Product) ([]domain.Product, error) {
		if len(items) > 0 {
			return items, nil
		}
		log.Info(nil, "seed.products", map[string]any{"count": seedProducts})
		return g.products(), nil
	}); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	products, err := s.Products.List(ctx)
	if err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if err := s.Orders.c.update(ctx, func(items []domain.Order) ([]domain.Order, error) {
		if len(items) > 0 || len(products) == 0 {
			return items, nil
		}
		log.Info(nil, "seed.orders", map[string]any{"count": seedOrders})
		return g.orders(products), nil
	}); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	if err := s.Users.c.update(ctx, func(items []domain.User) ([]domain.User, error) {
		if len(items) > 0 {
			return items, nil
		}
		users, err := g.users(opts, s.Users.bcryptCost)
		if err != nil {
			return nil, err
		}
		log.Info(nil, "seed.users", map[string]any{"count": len(users), "admin": users[0].Email})
		return users, nil
	}); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}

type generator struct {
	rnd *rand.Rand
	now time.Time
}

func (g *generator) pick(xs []string) string { return xs[g.rnd.IntN(len(xs))] }

func (g *generator) daysAgo(maxDays int) time.Time {
	return g.now.Add(-time.Duration(g.rnd.IntN(maxDays*24*60)) * time.Minute)
}

func (g *generator) person() (string, string) {
	first, last := g.pick(seedFirst), g.pick(seedLast)
	return first + " " + last, strings.ToLower(first + "." + last)
}

func (g *generator) products() []domain.Product {
	out := make([]domain.Product, 0, seedProducts)
	for i := 1; i <= seedProducts; i++ {
		stock := g.rnd.IntN(60)
		if i%5 == 0 {
			stock = g.rnd.IntN(10)
		}
		status := domain.ProductInStock
		switch {
		case stock == 0:
			status = domain.ProductOutOfStock
		case stock < 10:
			status = domain.ProductLowStock
		}
		author, _ := g.person()
		created := g.daysAgo(180)
		out = append(out, domain.Product{
			ID:        i,
			Name:      "The " + g.pick(seedAdjectives) + " " + g.pick(seedNouns),
			SKU:       fmt.Sprintf("SKU-%04d", 1000+i),
			Category:  g.pick(seedCategories),
			Price:     decimal.New(int64(499+g.rnd.IntN(5500)), -2),
			Discount:  decimal.NewFromInt(seedDiscounts[g.rnd.IntN(len(seedDiscounts))]),
			Stock:     stock,
			Status:    status,
			Author:    author,
			Image:     fmt.Sprintf("/images/products/%d.jpg", i),
			Featured:  g.rnd.IntN(3) == 0,
			CreatedAt: &created,
			UpdatedAt: &created,
		})
	}
	return out
}

func (g *generator) orders(products []domain.Product) []domain.Order {
	statuses := []domain.OrderStatus{domain.OrderPending, domain.OrderProcessing, domain.OrderShipped, domain.OrderDelivered, domain.OrderCancelled}
	payments := []domain.PaymentStatus{domain.PaymentPaid, domain.PaymentPaid, domain.PaymentPaid, domain.PaymentPending, domain.PaymentFailed, domain.PaymentRefunded}

	out := make([]domain.Order, 0, seedOrders)
	for i := 0; i < seedOrders; i++ {
		n := 1 + g.rnd.IntN(3)
		items := make([]domain.OrderItem, 0, n)
		for _, idx := range g.rnd.Perm(len(products))[:min(n, len(products))] {
			p := products[idx]
			items = append(items, domain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  1 + g.rnd.IntN(3),
				Price:     p.Price,
			})
		}
		name, handle := g.person()
		status := statuses[g.rnd.IntN(len(statuses))]
		var tracking *string
		if status == domain.OrderShipped || status == domain.OrderDelivered {
			t := fmt.Sprintf("TRK%09d", g.rnd.IntN(1_000_000_000))
			tracking = &t
		}
		out = append(out, domain.Order{
			ID:              fmt.Sprintf("%s%d", orderIDPrefix, firstOrderNum+i),
			CustomerName:    name,
			CustomerEmail:   handle + "@example.com",
			Date:            g.daysAgo(45),
			Items:           items,
			Total:           domain.ItemsTotal(items),
			Status:          status,
			PaymentStatus:   payments[g.rnd.IntN(len(payments))],
			PaymentMethod:   g.pick(seedMethods),
			ShippingAddress: fmt.Sprintf("%d %s, %s", 1+g.rnd.IntN(999), g.pick(seedStreets), g.pick(seedCities)),
			TrackingNumber:  tracking,
		})
	}
	return out
}

func (g *generator) users(opts SeedOptions, cost int) ([]domain.User, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), cost)
	if err != nil {
		return nil, err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte(opts.UserPassword), cost)
	if err != nil {
		return nil, err
	}

	adminName := opts.AdminName
	if adminName == "" {
		adminName = "Admin"
	}
	joined := g.now.AddDate(-1, 0, 0)
	out := []domain.User{{
		ID:           1,
		Name:         adminName,
		Email:        opts.AdminEmail,
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Status:       domain.UserActive,
		JoinDate:     joined,
		Verified:     true,
	}}

	roles := []domain.Role{domain.RoleCustomer, domain.RoleCustomer, domain.RoleCustomer, domain.RoleSeller}
	statuses := []domain.UserStatus{domain.UserActive, domain.UserActive, domain.UserActive, domain.UserInactive, domain.UserPending, domain.UserBanned}
	for i := 2; i <= seedUsers; i++ {
		name, handle := g.person()
		u := domain.User{
			ID:           i,
			Name:         name,
			Email:        fmt.Sprintf("%s%d@example.com", handle, i),
			PasswordHash: string(userHash),
			Role:         roles[g.rnd.IntN(len(roles))],
			Status:       statuses[g.rnd.IntN(len(statuses))],
			JoinDate:     g.daysAgo(120),
			Orders:       g.rnd.IntN(15),
			Verified:     g.rnd.IntN(4) != 0,
		}
		if g.rnd.IntN(3) != 0 {
			last := g.daysAgo(14)
			u.LastLogin = &last
		}
		out = append(out, u)
	}
	return out, nil
}
