package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/types"
)

// Service exposes the customer cart operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*models.CartItem, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     Repository
	products productLoader
}

// NewService builds the cart service.
func NewService(repo Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}

	view := &View{Items: make([]Line, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, Line{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    product.Name,
			UnitPrice:      product.Price,
			ImageURL:       product.ImageURL,
			Quantity:       item.Quantity,
			Specifications: item.Specifications,
			LineTotal:      lineTotal,
			UpdatedAt:      item.UpdatedAt,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*models.CartItem, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if err := validateSelections(product.Specifications, req.Specifications); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, req.ProductID)
	switch {
	case err == nil:
		// Re-adding the same product merges quantities and takes the new specs.
		existing.Quantity += req.Quantity
		existing.Specifications = req.Specifications
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart item")
		}
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			UserID:         userID,
			ProductID:      req.ProductID,
			Quantity:       req.Quantity,
			Specifications: req.Specifications,
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart item")
		}
		return item, nil

	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart item")
	}
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*models.CartItem, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		item.Quantity = *req.Quantity
	}
	if req.Specifications != nil {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err == nil {
			if err := validateSelections(product.Specifications, *req.Specifications); err != nil {
				return nil, err
			}
		}
		item.Specifications = *req.Specifications
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart item")
	}
	return item, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (s *service) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
	if item.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return item, nil
}

func validateSelections(offered types.Specifications, selected types.SelectedOptions) error {
	if len(selected) == 0 || len(offered) == 0 {
		return nil
	}
	for name, value := range selected {
		if !offered.Allows(name, value) {
			return pkgerrors.New(pkgerrors.CodeValidation, "specification not offered for this product").
				WithDetails(map[string]any{"option": name, "value": value})
		}
	}
	return nil
}
