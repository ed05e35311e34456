package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/pkg/types"
)

// Product is a printable item offered under a category. Specifications
// enumerate the options a customer can pick when ordering.
type Product struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string               `gorm:"column:name;not null"`
	CategoryID     uuid.UUID            `gorm:"column:category_id;type:uuid;not null;index"`
	Description    *string              `gorm:"column:description"`
	Price          decimal.Decimal      `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL       *string              `gorm:"column:image_url"`
	Specifications types.Specifications `gorm:"column:specifications;type:jsonb;serializer:json"`
	IsActive       bool                 `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
