package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/pkg/enums"
)

// Order is the customer-facing aggregate created at checkout. Items are
// immutable snapshots; only status and payment_status move afterwards.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string              `gorm:"column:order_number;type:text;not null;uniqueIndex"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	PaymentMethod   string              `gorm:"column:payment_method;not null;default:'wallet'"`
	Notes           *string             `gorm:"column:notes"`
	ShippingAddress *string             `gorm:"column:shipping_address"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
