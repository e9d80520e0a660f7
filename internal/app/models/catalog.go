package models

import (
	"time"
)

// Exam defines the exam model based on the 'exams' table
type Exam struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"ENEM"`
	Slug        string    `json:"slug" db:"slug" example:"enem"` // Unique short identifier used in URLs
	Institution *string   `json:"institution,omitempty" db:"institution"`
	Description *string   `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Subject defines the subject model based on the 'subjects' table
type Subject struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"` // Unique case-insensitively
	ExamID    *int64    `json:"examId,omitempty" db:"exam_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Topic defines the topic model based on the 'topics' table
type Topic struct {
	ID        int64     `json:"id" db:"id"`
	SubjectID int64     `json:"subjectId" db:"subject_id"`
	Name      string    `json:"name" db:"name"` // Unique case-insensitively within the subject
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Subject   *Subject  `json:"subject,omitempty"` // Relation, no db tag
}
