package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/craftpress/printshop-backend/pkg/enums"
)

// Complaint is a customer-raised support case, optionally tied to an order.
type Complaint struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ComplaintNumber string                `gorm:"column:complaint_number;type:text;not null;uniqueIndex"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	OrderID         *uuid.UUID            `gorm:"column:order_id;type:uuid"`
	Subject         string                `gorm:"column:subject;not null"`
	Description     string                `gorm:"column:description;not null"`
	Status          enums.ComplaintStatus `gorm:"column:status;type:text;not null;default:'open'"`
	Response        *string               `gorm:"column:response"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
