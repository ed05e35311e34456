package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCustomers returns customer accounts, optionally filtered by a
// case-insensitive name/email search.
func (r *Repository) ListCustomers(ctx context.Context, search string, params pagination.Params) ([]models.User, error) {
	params = pagination.Normalize(params)

	query := r.db.WithContext(ctx).
		Where("role = ?", enums.UserRoleCustomer)

	if term := strings.TrimSpace(search); term != "" {
		like := "%" + term + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var customers []models.User
	if err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// CountCustomers returns the total number of customer accounts.
func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", enums.UserRoleCustomer).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
