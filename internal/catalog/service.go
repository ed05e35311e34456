package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/craftpress/printshop-backend/pkg/db"
	"github.com/craftpress/printshop-backend/pkg/db/models"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

const maxCategoryDepth = 4

// Service exposes catalog reads for everyone and writes for admins.
type Service interface {
	ListProducts(ctx context.Context, filters ProductFilters, params pagination.Params) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CategoryTree(ctx context.Context) ([]CategoryNode, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	PriceList(ctx context.Context) ([]PriceEntry, error)
	UpdatePrice(ctx context.Context, productID uuid.UUID, req UpdatePriceRequest) (*models.Product, error)
}

type service struct {
	products   ProductRepository
	categories CategoryRepository
}

// NewService builds the catalog service.
func NewService(products ProductRepository, categories CategoryRepository) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{products: products, categories: categories}, nil
}

func (s *service) ListProducts(ctx context.Context, filters ProductFilters, params pagination.Params) ([]models.Product, error) {
	products, err := s.products.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if !req.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	product := &models.Product{
		Name:           strings.TrimSpace(req.Name),
		CategoryID:     req.CategoryID,
		Description:    req.Description,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		Specifications: req.Specifications,
		IsActive:       true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
		}
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.Specifications != nil {
		product.Specifications = *req.Specifications
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	referenced, err := s.products.ReferencedByOrderItems(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check order references")
	}
	if referenced {
		return pkgerrors.New(pkgerrors.CodeValidation, "product is referenced by existing orders")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) CategoryTree(ctx context.Context) ([]CategoryNode, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return buildTree(categories), nil
}

func buildTree(categories []models.Category) []CategoryNode {
	children := map[uuid.UUID][]models.Category{}
	var roots []models.Category
	for _, category := range categories {
		if category.ParentID == nil {
			roots = append(roots, category)
			continue
		}
		children[*category.ParentID] = append(children[*category.ParentID], category)
	}

	var attach func(category models.Category) CategoryNode
	attach = func(category models.Category) CategoryNode {
		node := CategoryNode{Category: category, Children: []CategoryNode{}}
		for _, child := range children[category.ID] {
			node.Children = append(node.Children, attach(child))
		}
		return node
	}

	tree := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, attach(root))
	}
	return tree
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	return category, nil
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	level := 1
	if req.ParentID != nil {
		parent, err := s.categories.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent category does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load parent category")
		}
		level = parent.Level + 1
		if level > maxCategoryDepth {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category nesting too deep")
		}
	}

	slug := Slugify(req.Name)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name produces an empty slug")
	}

	category := &models.Category{
		Name:     strings.TrimSpace(req.Name),
		Slug:     slug,
		ParentID: req.ParentID,
		Level:    level,
		ImageURL: req.ImageURL,
		IsActive: true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
		slug := Slugify(category.Name)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name produces an empty slug")
		}
		category.Slug = slug
	}
	if req.ImageURL != nil {
		category.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categories.Save(ctx, category); err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save category")
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	hasChildren, err := s.categories.HasChildren(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check subcategories")
	}
	if hasChildren {
		return pkgerrors.New(pkgerrors.CodeValidation, "category has subcategories")
	}

	hasProducts, err := s.categories.HasProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check products")
	}
	if hasProducts {
		return pkgerrors.New(pkgerrors.CodeValidation, "category has products")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	return nil
}

func (s *service) PriceList(ctx context.Context) ([]PriceEntry, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	entries := make([]PriceEntry, 0, len(products))
	for _, product := range products {
		entries = append(entries, PriceEntry{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
		})
	}
	return entries, nil
}

func (s *service) UpdatePrice(ctx context.Context, productID uuid.UUID, req UpdatePriceRequest) (*models.Product, error) {
	if !req.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	product.Price = req.Price
	if err := s.products.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save product")
	}
	return product, nil
}
