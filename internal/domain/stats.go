package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesWindowDays is the length of the dashboard's daily sales series.
const SalesWindowDays = 30

type RecentOrder struct {
	ID       string          `json:"id"`
	Customer string          `json:"customer"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Status   OrderStatus     `json:"status"`
}

type SalesPoint struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Sales  decimal.Decimal `json:"sales"`
	Orders int             `json:"orders"`
}

type Stats struct {
	TotalUsers       int             `json:"totalUsers"`
	TotalProducts    int             `json:"totalProducts"`
	TotalOrders      int             `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	PendingOrders    int             `json:"pendingOrders"`
	ProcessingOrders int             `json:"processingOrders"`
	LowStockProducts int             `json:"lowStockProducts"`
	NewUsers         int             `json:"newUsers"`
	RecentOrders     []RecentOrder   `json:"recentOrders"`
	SalesData        []SalesPoint    `json:"salesData"`
}
