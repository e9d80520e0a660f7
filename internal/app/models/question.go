package models

import (
	"time"

	"github.com/google/uuid"
)

// Question defines the question model based on the 'questions' table
type Question struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Statement    string       `json:"statement" db:"statement"`
	SubjectID    int64        `json:"subjectId" db:"subject_id"`
	ExamID       *int64       `json:"examId,omitempty" db:"exam_id"`
	Year         *int16       `json:"year,omitempty" db:"year"`
	QuestionType QuestionType `json:"questionType" db:"qtype"`
	IsActive     bool         `json:"isActive" db:"is_active"`
	CreatedBy    *uuid.UUID   `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations, no db tags
	Subject      *Subject      `json:"subject,omitempty"`
	Topics       []Topic       `json:"topics,omitempty"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

// Alternative defines one selectable choice of a question
type Alternative struct {
	ID         uuid.UUID `json:"id" db:"id"`
	QuestionID uuid.UUID `json:"questionId" db:"question_id"`
	Body       string    `json:"body" db:"body"`
	IsCorrect  bool      `json:"-" db:"is_correct"`
	Ord        int16     `json:"ord" db:"ord"` // 1-based position within the question
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Label derives the display letter from ord (1 -> "A"). Never stored so
// it cannot drift from the ordering.
func (a Alternative) Label() string {
	return string(rune('A' + a.Ord - 1))
}
