package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/types"
)

// ProductFilters narrows the public product listing.
type ProductFilters struct {
	CategoryID *uuid.UUID
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// CreateProductRequest is the admin payload for a new product.
type CreateProductRequest struct {
	Name           string               `json:"name" validate:"required,min=2,max=200"`
	CategoryID     uuid.UUID            `json:"category_id" validate:"required"`
	Description    *string              `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price          decimal.Decimal      `json:"price"`
	ImageURL       *string              `json:"image_url,omitempty" validate:"omitempty,url"`
	Specifications types.Specifications `json:"specifications,omitempty"`
}

// UpdateProductRequest applies a partial update; nil fields are left as-is.
type UpdateProductRequest struct {
	Name           *string               `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	CategoryID     *uuid.UUID            `json:"category_id,omitempty"`
	Description    *string               `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price          *decimal.Decimal      `json:"price,omitempty"`
	ImageURL       *string               `json:"image_url,omitempty" validate:"omitempty,url"`
	Specifications *types.Specifications `json:"specifications,omitempty"`
	IsActive       *bool                 `json:"is_active,omitempty"`
}

// CreateCategoryRequest is the admin payload for a new taxonomy node.
type CreateCategoryRequest struct {
	Name     string     `json:"name" validate:"required,min=2,max=120"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	ImageURL *string    `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateCategoryRequest applies a partial update to a category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CategoryNode nests a category with its children for the tree response.
type CategoryNode struct {
	models.Category
	Children []CategoryNode `json:"children"`
}

// PriceEntry is one row of the public price list.
type PriceEntry struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// UpdatePriceRequest carries the new price for a product.
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}
