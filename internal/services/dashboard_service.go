package services

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"backoffice/internal/domain"
	"backoffice/internal/log"
)

const (
	recentOrdersLimit = 5
	lowStockBelow     = 10
	dayLayout         = "2006-01-02"
)

type ProductLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type OrderLister interface {
	List(ctx context.Context) ([]domain.Order, error)
}

type UserLister interface {
	List(ctx context.Context) ([]domain.User, error)
}

// DashboardService derives summary statistics from the three collections.
// It is read-only and never fails: faults produce zeroed stats.
type DashboardService struct {
	products ProductLister
	orders   OrderLister
	users    UserLister
	now      func() time.Time
	group    singleflight.Group
}

func NewDashboardService(p ProductLister, o OrderLister, u UserLister, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{products: p, orders: o, users: u, now: now}
}

// Stats computes the dashboard. Concurrent callers share one computation,
// which outlives the cancellation of whichever request started it.
func (s *DashboardService) Stats(ctx context.Context) domain.Stats {
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.group.Do("stats", func() (any, error) {
		st, err := s.compute(shared)
		if err != nil {
			log.Error(nil, "dashboard.stats", err, nil)
			return emptyStats(s.now()), nil
		}
		return st, nil
	})
	st := v.(domain.Stats)
	st.RecentOrders = slices.Clone(st.RecentOrders)
	st.SalesData = slices.Clone(st.SalesData)
	return st
}

func (s *DashboardService) compute(ctx context.Context) (domain.Stats, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	now := s.now()
	st := emptyStats(now)
	st.TotalProducts = len(products)
	st.TotalOrders = len(orders)
	st.TotalUsers = len(users)

	for _, p := range products {
		if p.Stock > 0 && p.Stock < lowStockBelow {
			st.LowStockProducts++
		}
	}

	cutoff := now.AddDate(0, 0, -domain.SalesWindowDays)
	for _, u := range users {
		if !u.JoinDate.Before(cutoff) && !u.JoinDate.After(now) {
			st.NewUsers++
		}
	}

	byDay := make(map[string]int, len(st.SalesData))
	for i, p := range st.SalesData {
		byDay[p.Date] = i
	}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderPending:
			st.PendingOrders++
		case domain.OrderProcessing:
			st.ProcessingOrders++
		}
		if o.Collected() {
			st.TotalRevenue = st.TotalRevenue.Add(o.Total)
		}
		if i, ok := byDay[o.Date.In(now.Location()).Format(dayLayout)]; ok {
			st.SalesData[i].Orders++
			if o.Collected() {
				st.SalesData[i].Sales = st.SalesData[i].Sales.Add(o.Total)
			}
		}
	}

	recent := slices.Clone(orders)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })
	for _, o := range recent[:min(recentOrdersLimit, len(recent))] {
		st.RecentOrders = append(st.RecentOrders, domain.RecentOrder{
			ID:       o.ID,
			Customer: o.CustomerName,
			Date:     o.Date,
			Amount:   o.Total,
			Status:   o.Status,
		})
	}
	return st, nil
}

// emptyStats is the zero dashboard: no counts and a 30 day series of zeros
// ending on now's calendar day.
func emptyStats(now time.Time) domain.Stats {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	series := make([]domain.SalesPoint, domain.SalesWindowDays)
	for i := range series {
		day := today.AddDate(0, 0, i-(domain.SalesWindowDays-1))
		series[i] = domain.SalesPoint{Date: day.Format(dayLayout), Sales: decimal.Zero}
	}
	return domain.Stats{
		TotalRevenue: decimal.Zero,
		RecentOrders: []domain.RecentOrder{},
		SalesData:    series,
	}
}
