package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/internal/orders"
	"github.com/craftpress/printshop-backend/internal/users"
	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

const (
	recentOrdersLimit = 10
	dailySeriesDays   = 30
)

// Service aggregates the admin dashboard views.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	Customers(ctx context.Context, search string, params pagination.Params) ([]CustomerSummary, error)
	Customer(ctx context.Context, id uuid.UUID) (*CustomerDetail, error)
}

type orderStats interface {
	CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
	DailySeries(ctx context.Context, since time.Time) ([]orders.DailyStat, error)
	UserStats(ctx context.Context, userID uuid.UUID) (*orders.UserOrderStats, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filters orders.Filters, params pagination.Params) ([]models.Order, error)
}

type customerDirectory interface {
	ListCustomers(ctx context.Context, search string, params pagination.Params) ([]models.User, error)
	CountCustomers(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type productCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type complaintCounter interface {
	CountOpen(ctx context.Context) (int64, error)
}

type walletReader interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
}

type service struct {
	orders     orderStats
	customers  customerDirectory
	products   productCounter
	complaints complaintCounter
	wallets    walletReader
}

// ServiceParams carries the dashboard service dependencies.
type ServiceParams struct {
	Orders     orderStats
	Customers  customerDirectory
	Products   productCounter
	Complaints complaintCounter
	Wallets    walletReader
}

// NewService builds the dashboard service.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("order stats required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customer directory required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product counter required")
	}
	if params.Complaints == nil {
		return nil, fmt.Errorf("complaint counter required")
	}
	if params.Wallets == nil {
		return nil, fmt.Errorf("wallet reader required")
	}
	return &service{
		orders:     params.Orders,
		customers:  params.Customers,
		products:   params.Products,
		complaints: params.Complaints,
		wallets:    params.Wallets,
	}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count orders")
	}
	var total int64
	for _, n := range counts {
		total += n
	}

	revenue, err := s.orders.Revenue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum revenue")
	}
	customers, err := s.customers.CountCustomers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count customers")
	}
	products, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	openComplaints, err := s.complaints.CountOpen(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count complaints")
	}
	recent, err := s.orders.Recent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recent orders")
	}
	since := time.Now().AddDate(0, 0, -dailySeriesDays).Truncate(24 * time.Hour)
	series, err := s.orders.DailySeries(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "daily series")
	}

	return &Overview{
		OrderCounts:    counts,
		TotalOrders:    total,
		Revenue:        revenue,
		Customers:      customers,
		ActiveProducts: products,
		OpenComplaints: openComplaints,
		RecentOrders:   recent,
		DailyOrders:    series,
	}, nil
}

func (s *service) Customers(ctx context.Context, search string, params pagination.Params) ([]CustomerSummary, error) {
	accounts, err := s.customers.ListCustomers(ctx, search, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}

	summaries := make([]CustomerSummary, 0, len(accounts))
	for _, account := range accounts {
		stats, err := s.orders.UserStats(ctx, account.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "customer stats")
		}
		summaries = append(summaries, CustomerSummary{
			User:  *users.FromModel(&account),
			Stats: *stats,
		})
	}
	return summaries, nil
}

func (s *service) Customer(ctx context.Context, id uuid.UUID) (*CustomerDetail, error) {
	account, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}
	if account.Role != enums.UserRoleCustomer {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}

	stats, err := s.orders.UserStats(ctx, account.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "customer stats")
	}

	recent, err := s.orders.ListByUser(ctx, account.ID, orders.Filters{}, pagination.Params{Limit: recentOrdersLimit})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "customer orders")
	}

	balance := decimal.Zero
	wallet, err := s.wallets.FindByUser(ctx, account.ID)
	switch {
	case err == nil:
		balance = wallet.Balance
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No wallet yet; the customer simply has not topped up.
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wallet")
	}

	return &CustomerDetail{
		User:          *users.FromModel(account),
		Stats:         *stats,
		WalletBalance: balance,
		RecentOrders:  recent,
	}, nil
}
