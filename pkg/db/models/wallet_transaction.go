package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/pkg/enums"
)

// WalletTransaction is an append-only ledger entry. Amount is always
// positive; Type carries the direction.
type WalletTransaction struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	OrderID       *uuid.UUID            `gorm:"column:order_id;type:uuid"`
	Type          enums.TransactionType `gorm:"column:type;type:text;not null"`
	Amount        decimal.Decimal       `gorm:"column:amount;type:numeric(10,2);not null"`
	Description   string                `gorm:"column:description;not null"`
	PaymentMethod *string               `gorm:"column:payment_method"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
}
