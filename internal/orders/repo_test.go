package orders

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "orders.db") + "?_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL,
  payment_status TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  notes TEXT,
  shipping_address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  specifications TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func seedOrder(t *testing.T, repo Repository, userID uuid.UUID, number string, total int64, created time.Time, status enums.OrderStatus, payment enums.PaymentStatus, items int) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   number,
		UserID:        userID,
		TotalAmount:   decimal.NewFromInt(total),
		Status:        status,
		PaymentStatus: payment,
		PaymentMethod: "wallet",
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	for i := 0; i < items; i++ {
		order.Items = append(order.Items, models.OrderItem{
			ID:          uuid.New(),
			ProductID:   uuid.New(),
			ProductName: "Test Product",
			Quantity:    1,
			Price:       decimal.NewFromInt(total / int64(items)),
			Total:       decimal.NewFromInt(total / int64(items)),
		})
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestRepositoryFindByID_preloadsItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	created := seedOrder(t, repo, userID, "ORD-1-AAAAAAAAA", 300, time.Now().UTC(), enums.OrderStatusPending, enums.PaymentStatusPaid, 2)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1-AAAAAAAAA", found.OrderNumber)
	assert.Equal(t, userID, found.UserID)
	require.Len(t, found.Items, 2)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(300)))
}

func TestRepositoryListByUser_newestFirstWithStatusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	now := time.Now().UTC()
	seedOrder(t, repo, userID, "ORD-1-BBBBBBBBB", 100, now.Add(-time.Hour), enums.OrderStatusPending, enums.PaymentStatusPaid, 1)
	seedOrder(t, repo, userID, "ORD-2-CCCCCCCCC", 200, now, enums.OrderStatusCompleted, enums.PaymentStatusPaid, 1)
	seedOrder(t, repo, uuid.New(), "ORD-3-DDDDDDDDD", 400, now, enums.OrderStatusPending, enums.PaymentStatusPaid, 1)

	list, err := repo.ListByUser(context.Background(), userID, Filters{}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ORD-2-CCCCCCCCC", list[0].OrderNumber)
	assert.Equal(t, "ORD-1-BBBBBBBBB", list[1].OrderNumber)

	pending := enums.OrderStatusPending
	filtered, err := repo.ListByUser(context.Background(), userID, Filters{Status: &pending}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "ORD-1-BBBBBBBBB", filtered[0].OrderNumber)
}

func TestRepositoryAggregates_excludeUnsettledPayments(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	now := time.Now().UTC()
	seedOrder(t, repo, userID, "ORD-1-EEEEEEEEE", 100, now, enums.OrderStatusPending, enums.PaymentStatusPaid, 1)
	seedOrder(t, repo, userID, "ORD-2-FFFFFFFFF", 250, now, enums.OrderStatusCompleted, enums.PaymentStatusPaid, 1)
	seedOrder(t, repo, userID, "ORD-3-GGGGGGGGG", 900, now, enums.OrderStatusPending, enums.PaymentStatusFailed, 1)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[enums.OrderStatusPending])
	assert.Equal(t, int64(1), counts[enums.OrderStatusCompleted])

	revenue, err := repo.Revenue(context.Background())
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromInt(350)), "revenue %s", revenue)

	stats, err := repo.UserStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.OrdersCount)
	assert.True(t, stats.TotalSpent.Equal(decimal.NewFromInt(350)), "spent %s", stats.TotalSpent)
}
