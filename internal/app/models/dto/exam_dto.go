package dto

import "time"

// CreateExamRequest represents exam creation data
type CreateExamRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Slug        string  `json:"slug" binding:"required,max=20"`
	Institution *string `json:"institution,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

// UpdateExamRequest represents a partial exam update. Nil fields keep
// their current values; the slug is immutable.
type UpdateExamRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Institution *string `json:"institution,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ExamResponse represents full exam information
type ExamResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug" example:"enem"`
	Institution   *string   `json:"institution,omitempty"`
	Description   *string   `json:"description,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	QuestionCount int       `json:"questionCount"`
}

// ExamSummaryResponse represents the condensed exam listing
type ExamSummaryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Institution *string `json:"institution,omitempty"`
}
