package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/pkg/enums"
	"github.com/craftpress/printshop-backend/pkg/types"
)

// PlaceOrderItem is an explicit checkout line. When the request carries no
// items the caller's cart is used instead.
type PlaceOrderItem struct {
	ProductID      uuid.UUID             `json:"product_id" validate:"required"`
	Quantity       int                   `json:"quantity" validate:"required,min=1"`
	Specifications types.SelectedOptions `json:"specifications,omitempty"`
}

// PlaceOrderRequest creates an order. Only "wallet" settles immediately;
// other methods leave the payment pending.
type PlaceOrderRequest struct {
	Items           []PlaceOrderItem `json:"items,omitempty" validate:"omitempty,dive"`
	PaymentMethod   string           `json:"payment_method,omitempty" validate:"omitempty,oneof=wallet upi card netbanking"`
	Notes           *string          `json:"notes,omitempty"`
	ShippingAddress *string          `json:"shipping_address,omitempty"`
}

// UpdateStatusRequest moves an order along the fulfilment pipeline.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Filters narrows order listings.
type Filters struct {
	Status *enums.OrderStatus
}

// UserOrderStats summarizes a customer's order history for the admin views.
type UserOrderStats struct {
	OrdersCount int64           `json:"orders_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

// DailyStat is one day of the dashboard order series.
type DailyStat struct {
	Day     time.Time       `json:"day" gorm:"column:day"`
	Orders  int64           `json:"orders" gorm:"column:orders"`
	Revenue decimal.Decimal `json:"revenue" gorm:"column:revenue"`
}
