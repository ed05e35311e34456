package auth

import (
	"github.com/craftpress/printshop-backend/internal/users"
)

// RegisterRequest captures the fields needed to create a customer account.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=120"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the token and user produced by register/login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
