package complaints

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftpress/printshop-backend/pkg/db"
	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
	pkgerrors "github.com/craftpress/printshop-backend/pkg/errors"
	"github.com/craftpress/printshop-backend/pkg/pagination"
)

// Service exposes complaint intake and triage.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*models.Complaint, error)
	Get(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, id uuid.UUID) (*models.Complaint, error)
	List(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, filters Filters, params pagination.Params) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*models.Complaint, error)
}

type orderLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type service struct {
	repo   Repository
	orders orderLoader
}

// NewService builds the complaint service.
func NewService(repo Repository, orders orderLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("complaint repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order loader required")
	}
	return &service{repo: repo, orders: orders}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*models.Complaint, error) {
	if req.OrderID != nil {
		order, err := s.orders.FindByID(ctx, *req.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "order not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		// Complaints can only reference the caller's own orders.
		if order.UserID != userID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order not found")
		}
	}

	for attempt := 0; ; attempt++ {
		number, err := NewComplaintNumber()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate complaint number")
		}

		complaint := &models.Complaint{
			ComplaintNumber: number,
			UserID:          userID,
			OrderID:         req.OrderID,
			Subject:         req.Subject,
			Description:     req.Description,
			Status:          enums.ComplaintStatusOpen,
		}
		if err := s.repo.Create(ctx, complaint); err != nil {
			if attempt == 0 && db.IsUniqueViolation(err, "complaint_number") {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create complaint")
		}
		return complaint, nil
	}
}

func (s *service) Get(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, id uuid.UUID) (*models.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load complaint")
	}
	if role != enums.UserRoleAdmin && complaint.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
	}
	return complaint, nil
}

func (s *service) List(ctx context.Context, requesterID uuid.UUID, role enums.UserRole, filters Filters, params pagination.Params) ([]models.Complaint, error) {
	var (
		complaints []models.Complaint
		err        error
	)
	if role == enums.UserRoleAdmin {
		complaints, err = s.repo.List(ctx, filters, params)
	} else {
		complaints, err = s.repo.ListByUser(ctx, requesterID, params)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list complaints")
	}
	return complaints, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*models.Complaint, error) {
	status, err := enums.ParseComplaintStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid complaint status").
			WithDetails(map[string]any{"status": req.Status})
	}

	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load complaint")
	}

	complaint.Status = status
	if req.Response != nil {
		complaint.Response = req.Response
	}
	if err := s.repo.Save(ctx, complaint); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save complaint")
	}
	return complaint, nil
}
