package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/pkg/types"
)

// OrderItem snapshots one product line at the moment the order was placed.
// Price is the unit price; Total is price times quantity.
type OrderItem struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	ProductName    string                `gorm:"column:product_name;not null"`
	Quantity       int                   `gorm:"column:quantity;not null"`
	Price          decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Total          decimal.Decimal       `gorm:"column:total;type:numeric(10,2);not null"`
	Specifications types.SelectedOptions `gorm:"column:specifications;type:jsonb;serializer:json"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
}
