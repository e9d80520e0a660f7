package models

import (
	"time"

	"github.com/google/uuid"
)

// Answer defines the answer model based on the 'answers' table.
// is_correct is captured at answer time so later edits to the
// question's alternatives never rewrite history.
type Answer struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	QuestionID    uuid.UUID `json:"questionId" db:"question_id"`
	AlternativeID uuid.UUID `json:"alternativeId" db:"alternative_id"`
	IsCorrect     bool      `json:"isCorrect" db:"is_correct"`
	AnsweredAt    time.Time `json:"answeredAt" db:"answered_at"`
}
