package dto

import (
	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse represents a successful authentication. Login, register
// and the admin bootstrap endpoint all return this same shape.
type AuthResponse struct {
	Token       string         `json:"token"`
	UserID      uuid.UUID      `json:"userId"`
	Role        models.AppRole `json:"role" example:"USER"`
	DisplayName *string        `json:"displayName,omitempty"`
}
