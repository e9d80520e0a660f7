package dto

import (
	"time"

	"github.com/google/uuid"
)

// AnswerQuestionRequest represents an answer submission
type AnswerQuestionRequest struct {
	AlternativeID uuid.UUID `json:"alternativeId" binding:"required"`
}

// AnswerResponse represents a recorded answer. The correct alternative
// id is always included so the caller can reveal the right choice.
type AnswerResponse struct {
	ID                   uuid.UUID `json:"id"`
	QuestionID           uuid.UUID `json:"questionId"`
	AlternativeID        uuid.UUID `json:"alternativeId"`
	IsCorrect            bool      `json:"isCorrect"`
	AnsweredAt           time.Time `json:"answeredAt"`
	CorrectAlternativeID uuid.UUID `json:"correctAlternativeId"`
}

// UserStatsResponse represents a user's answering statistics.
// Accuracy is a percentage formatted to two decimals, "0.00" when the
// user has no answers.
type UserStatsResponse struct {
	TotalAnswers     int64  `json:"totalAnswers"`
	CorrectAnswers   int64  `json:"correctAnswers"`
	IncorrectAnswers int64  `json:"incorrectAnswers"`
	Accuracy         string `json:"accuracy" example:"66.67"`
}
