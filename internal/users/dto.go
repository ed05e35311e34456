package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/craftpress/printshop-backend/pkg/db/models"
	"github.com/craftpress/printshop-backend/pkg/enums"
)

// UserDTO is the public projection of a user record.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     *string        `json:"phone,omitempty"`
	Company   *string        `json:"company,omitempty"`
	Address   *string        `json:"address,omitempty"`
	Role      enums.UserRole `json:"role"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
}

// FromModel converts the persisted user into its DTO form.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Company:   user.Company,
		Address:   user.Address,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// CreateUserDTO carries the fields needed to insert a user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Company      *string
	Address      *string
	Role         enums.UserRole
}

// ToModel builds the persistence model from the DTO.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		Company:      d.Company,
		Address:      d.Address,
		Role:         d.Role,
		IsActive:     true,
	}
}
