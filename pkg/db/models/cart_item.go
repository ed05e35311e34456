package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/craftpress/printshop-backend/pkg/types"
)

// CartItem holds one product line in a customer's cart. A user carries at
// most one line per product; re-adding merges into the existing line.
type CartItem struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID             `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID      uuid.UUID             `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity       int                   `gorm:"column:quantity;not null"`
	Specifications types.SelectedOptions `gorm:"column:specifications;type:jsonb;serializer:json"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
