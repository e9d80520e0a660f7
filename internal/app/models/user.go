package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           uuid.UUID `json:"id" db:"id" example:"7b0d1f52-9f6e-4d2a-8a35-29bb9f2e4c11"`
	Role         AppRole   `json:"role" db:"role" example:"USER"`
	DisplayName  *string   `json:"displayName,omitempty" db:"display_name" example:"maria"`
	Email        *string   `json:"email,omitempty" db:"email" example:"maria@example.com"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}
