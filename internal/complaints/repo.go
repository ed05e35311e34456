package complaints

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

// Repository manages persistence for complaints.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, complaint *models.Complaint) error
	Save(ctx context.Context, complaint *models.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Complaint, error)
	List(ctx context.Context, filters Filters, params pagination.Params) ([]models.Complaint, error)
	CountOpen(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a complaint repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *repository) Save(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := r.db.WithContext(ctx).First(&complaint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Complaint, error) {
	params = pagination.Normalize(params)

	var complaints []models.Complaint
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *repository) List(ctx context.Context, filters Filters, params pagination.Params) ([]models.Complaint, error) {
	params = pagination.Normalize(params)

	query := r.db.WithContext(ctx).Model(&models.Complaint{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var complaints []models.Complaint
	if err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *repository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("status = ?", "open").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
