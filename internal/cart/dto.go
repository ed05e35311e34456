package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/pkg/types"
)

// AddItemRequest adds a product line to the caller's cart.
type AddItemRequest struct {
	ProductID      uuid.UUID             `json:"product_id" validate:"required"`
	Quantity       int                   `json:"quantity" validate:"required,min=1"`
	Specifications types.SelectedOptions `json:"specifications,omitempty"`
}

// UpdateItemRequest changes quantity and/or specifications on a cart line.
type UpdateItemRequest struct {
	Quantity       *int                   `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Specifications *types.SelectedOptions `json:"specifications,omitempty"`
}

// Line is one cart row joined with its product snapshot.
type Line struct {
	ID             uuid.UUID             `json:"id"`
	ProductID      uuid.UUID             `json:"product_id"`
	ProductName    string                `json:"product_name"`
	UnitPrice      decimal.Decimal       `json:"unit_price"`
	ImageURL       *string               `json:"image_url,omitempty"`
	Quantity       int                   `json:"quantity"`
	Specifications types.SelectedOptions `json:"specifications,omitempty"`
	LineTotal      decimal.Decimal       `json:"line_total"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// View is the assembled cart returned to the customer.
type View struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}
