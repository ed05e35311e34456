package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

type stubProductRepo struct {
	products   map[uuid.UUID]*models.Product
	referenced map[uuid.UUID]bool
	deleted    []uuid.UUID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products:   map[uuid.UUID]*models.Product{},
		referenced: map[uuid.UUID]bool{},
	}
}

func (s *stubProductRepo) WithTx(*gorm.DB) ProductRepository { return s }

func (s *stubProductRepo) Create(_ context.Context, product *models.Product) error {
	product.ID = uuid.New()
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepo) Save(_ context.Context, product *models.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) FindActiveByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if product, ok := s.products[id]; ok && product.IsActive {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (s *stubProductRepo) List(_ context.Context, filters ProductFilters, _ pagination.Params) ([]models.Product, error) {
	var out []models.Product
	for _, product := range s.products {
		if !product.IsActive {
			continue
		}
		if filters.CategoryID != nil && product.CategoryID != *filters.CategoryID {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

func (s *stubProductRepo) ListActive(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, product := range s.products {
		if product.IsActive {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (s *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.products, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubProductRepo) CountActive(context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

func (s *stubProductRepo) ReferencedByOrderItems(_ context.Context, id uuid.UUID) (bool, error) {
	return s.referenced[id], nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
	deleted    []uuid.UUID
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: map[uuid.UUID]*models.Category{}}
}

func (s *stubCategoryRepo) WithTx(*gorm.DB) CategoryRepository { return s }

func (s *stubCategoryRepo) Create(_ context.Context, category *models.Category) error {
	category.ID = uuid.New()
	s.categories[category.ID] = category
	return nil
}

func (s *stubCategoryRepo) Save(_ context.Context, category *models.Category) error {
	s.categories[category.ID] = category
	return nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	if category, ok := s.categories[id]; ok {
		copied := *category
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCategoryRepo) ListActive(context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, category := range s.categories {
		if category.IsActive {
			out = append(out, *category)
		}
	}
	return out, nil
}

func (s *stubCategoryRepo) HasChildren(_ context.Context, id uuid.UUID) (bool, error) {
	for _, category := range s.categories {
		if category.ParentID != nil && *category.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubCategoryRepo) HasProducts(_ context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.categories, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func seedCategory(repo *stubCategoryRepo, name string, parentID *uuid.UUID, level int) *models.Category {
	category := &models.Category{
		ID:       uuid.New(),
		Name:     name,
		Slug:     Slugify(name),
		ParentID: parentID,
		Level:    level,
		IsActive: true,
	}
	repo.categories[category.ID] = category
	return category
}

func newCatalogService(t *testing.T, products *stubProductRepo, categories *stubCategoryRepo) Service {
	t.Helper()
	svc, err := NewService(products, categories)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateProductValidatesCategoryAndPrice(t *testing.T) {
	t.Parallel()

	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	root := seedCategory(categories, "Business Cards", nil, 1)
	svc := newCatalogService(t, products, categories)

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:       "Matte Cards",
		CategoryID: uuid.New(),
		Price:      decimal.NewFromInt(100),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing category, got %v", err)
	}

	_, err = svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:       "Matte Cards",
		CategoryID: root.ID,
		Price:      decimal.Zero,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero price, got %v", err)
	}

	product, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:       "Matte Cards",
		CategoryID: root.ID,
		Price:      decimal.NewFromFloat(249.50),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if !product.IsActive {
		t.Fatal("new products should be active")
	}
}

func TestDeleteProductGuardsOrderReferences(t *testing.T) {
	t.Parallel()

	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	svc := newCatalogService(t, products, categories)

	id := uuid.New()
	products.products[id] = &models.Product{ID: id, Name: "Flyer", IsActive: true}
	products.referenced[id] = true

	err := svc.DeleteProduct(context.Background(), id)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for referenced product, got %v", err)
	}
	if len(products.deleted) != 0 {
		t.Fatal("referenced product must not be deleted")
	}

	products.referenced[id] = false
	if err := svc.DeleteProduct(context.Background(), id); err != nil {
		t.Fatalf("delete product: %v", err)
	}
}

func TestCreateCategoryDerivesSlugAndLevel(t *testing.T) {
	t.Parallel()

	categories := newStubCategoryRepo()
	svc := newCatalogService(t, newStubProductRepo(), categories)

	root, err := svc.CreateCategory(context.Background(), CreateCategoryRequest{Name: "Marketing Material"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if root.Slug != "marketing-material" {
		t.Fatalf("unexpected slug %q", root.Slug)
	}
	if root.Level != 1 {
		t.Fatalf("root level should be 1, got %d", root.Level)
	}

	child, err := svc.CreateCategory(context.Background(), CreateCategoryRequest{
		Name:     "Flyers",
		ParentID: &root.ID,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.Level != 2 {
		t.Fatalf("child level should be 2, got %d", child.Level)
	}
}

func TestCreateCategoryRejectsDeepNesting(t *testing.T) {
	t.Parallel()

	categories := newStubCategoryRepo()
	svc := newCatalogService(t, newStubProductRepo(), categories)

	deep := seedCategory(categories, "Deep", nil, maxCategoryDepth)

	_, err := svc.CreateCategory(context.Background(), CreateCategoryRequest{
		Name:     "Too Deep",
		ParentID: &deep.ID,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteCategoryGuardsDependents(t *testing.T) {
	t.Parallel()

	categories := newStubCategoryRepo()
	svc := newCatalogService(t, newStubProductRepo(), categories)

	root := seedCategory(categories, "Posters", nil, 1)
	seedCategory(categories, "A3 Posters", &root.ID, 2)

	err := svc.DeleteCategory(context.Background(), root.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for category with children, got %v", err)
	}
}

func TestCategoryTreeNestsChildren(t *testing.T) {
	t.Parallel()

	categories := newStubCategoryRepo()
	svc := newCatalogService(t, newStubProductRepo(), categories)

	root := seedCategory(categories, "Stationery", nil, 1)
	child := seedCategory(categories, "Letterheads", &root.ID, 2)

	tree, err := svc.CategoryTree(context.Background())
	if err != nil {
		t.Fatalf("category tree: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("expected one root, got %d", len(tree))
	}
	if tree[0].ID != root.ID {
		t.Fatalf("unexpected root %s", tree[0].ID)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].ID != child.ID {
		t.Fatalf("expected nested child, got %+v", tree[0].Children)
	}
}

func TestUpdatePrice(t *testing.T) {
	t.Parallel()

	products := newStubProductRepo()
	svc := newCatalogService(t, products, newStubCategoryRepo())

	id := uuid.New()
	products.products[id] = &models.Product{ID: id, Name: "Banner", Price: decimal.NewFromInt(500), IsActive: true}

	updated, err := svc.UpdatePrice(context.Background(), id, UpdatePriceRequest{Price: decimal.NewFromInt(650)})
	if err != nil {
		t.Fatalf("update price: %v", err)
	}
	if !updated.Price.Equal(decimal.NewFromInt(650)) {
		t.Fatalf("unexpected price %s", updated.Price)
	}

	_, err = svc.UpdatePrice(context.Background(), id, UpdatePriceRequest{Price: decimal.Zero})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero price, got %v", err)
	}
}
