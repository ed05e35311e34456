package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/internal/orders"
	"github.com/craftpress/printshop-backend/internal/users"
	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
)

// Overview is the admin landing-page summary.
type Overview struct {
	OrderCounts    map[enums.OrderStatus]int64 `json:"order_counts"`
	TotalOrders    int64                       `json:"total_orders"`
	Revenue        decimal.Decimal             `json:"revenue"`
	Customers      int64                       `json:"customers"`
	ActiveProducts int64                       `json:"active_products"`
	OpenComplaints int64                       `json:"open_complaints"`
	RecentOrders   []models.Order              `json:"recent_orders"`
	DailyOrders    []orders.DailyStat          `json:"daily_orders"`
}

// CustomerSummary is one row of the admin customer listing.
type CustomerSummary struct {
	User  users.UserDTO         `json:"user"`
	Stats orders.UserOrderStats `json:"stats"`
}

// CustomerDetail adds the wallet balance and latest orders to the summary.
type CustomerDetail struct {
	User          users.UserDTO         `json:"user"`
	Stats         orders.UserOrderStats `json:"stats"`
	WalletBalance decimal.Decimal       `json:"wallet_balance"`
	RecentOrders  []models.Order        `json:"recent_orders"`
}
