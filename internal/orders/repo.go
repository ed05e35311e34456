package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

// Repository manages persistence for orders and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filters Filters, params pagination.Params) ([]models.Order, error)
	List(ctx context.Context, filters Filters, params pagination.Params) ([]models.Order, error)
	CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
	DailySeries(ctx context.Context, since time.Time) ([]DailyStat, error)
	UserStats(ctx context.Context, userID uuid.UUID) (*UserOrderStats, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an order repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, filters Filters, params pagination.Params) ([]models.Order, error) {
	return r.list(ctx, filters, params, func(query *gorm.DB) *gorm.DB {
		return query.Where("user_id = ?", userID)
	})
}

func (r *repository) List(ctx context.Context, filters Filters, params pagination.Params) ([]models.Order, error) {
	return r.list(ctx, filters, params, nil)
}

func (r *repository) list(ctx context.Context, filters Filters, params pagination.Params, scope func(*gorm.DB) *gorm.DB) ([]models.Order, error) {
	params = pagination.Normalize(params)

	query := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")
	if scope != nil {
		query = scope(query)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var orders []models.Order
	if err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	var rows []struct {
		Status enums.OrderStatus `gorm:"column:status"`
		Total  int64             `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[enums.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// Revenue sums settled order totals. Failed and still-pending payments are
// excluded.
func (r *repository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *repository) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) DailySeries(ctx context.Context, since time.Time) ([]DailyStat, error) {
	var stats []DailyStat
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(`date_trunc('day', created_at) AS day,
			COUNT(*) AS orders,
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'paid'), 0) AS revenue`).
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repository) UserStats(ctx context.Context, userID uuid.UUID) (*UserOrderStats, error) {
	var row struct {
		OrdersCount int64           `gorm:"column:orders_count"`
		TotalSpent  decimal.Decimal `gorm:"column:total_spent"`
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(`COUNT(*) AS orders_count,
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'paid'), 0) AS total_spent`).
		Where("user_id = ?", userID).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	return &UserOrderStats{OrdersCount: row.OrdersCount, TotalSpent: row.TotalSpent}, nil
}
