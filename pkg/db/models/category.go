package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the product taxonomy, at most four levels deep.
type Category struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Slug      string     `gorm:"column:slug;type:text;not null;uniqueIndex"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	Level     int        `gorm:"column:level;not null;default:1"`
	ImageURL  *string    `gorm:"column:image_url"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
