package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
)

// CreateAlternativeRequest represents one alternative inside a question request.
// IsCorrect is a pointer so that an explicit false still passes binding.
type CreateAlternativeRequest struct {
	Body      string `json:"body" binding:"required,max=500"`
	IsCorrect *bool  `json:"isCorrect" binding:"required"`
}

// CreateQuestionRequest represents question creation data with nested alternatives
type CreateQuestionRequest struct {
	Statement    string                     `json:"statement" binding:"required,max=1000"`
	SubjectID    int64                      `json:"subjectId" binding:"required,gt=0"`
	ExamID       *int64                     `json:"examId,omitempty" binding:"omitempty,gt=0"`
	Year         *int16                     `json:"year,omitempty" binding:"omitempty,gte=1900,lte=2100"`
	QuestionType models.QuestionType        `json:"questionType" binding:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE"`
	TopicIDs     []int64                    `json:"topicIds" binding:"required,min=1,dive,gt=0"`
	Alternatives []CreateAlternativeRequest `json:"alternatives" binding:"required,min=2,max=6,dive"`
}

// Validate checks the cross-field alternative invariants and returns all
// violation messages at once rather than stopping at the first.
func (r *CreateQuestionRequest) Validate() []string {
	return validateAlternatives(r.QuestionType, r.Alternatives)
}

// UpdateQuestionRequest represents a full question rewrite: the topic set
// and alternative set replace the existing ones wholesale.
type UpdateQuestionRequest struct {
	Statement    string                     `json:"statement" binding:"required,max=1000"`
	SubjectID    int64                      `json:"subjectId" binding:"required,gt=0"`
	ExamID       *int64                     `json:"examId,omitempty" binding:"omitempty,gt=0"`
	Year         *int16                     `json:"year,omitempty" binding:"omitempty,gte=1900,lte=2100"`
	QuestionType models.QuestionType        `json:"questionType" binding:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE"`
	IsActive     *bool                      `json:"isActive" binding:"required"`
	TopicIDs     []int64                    `json:"topicIds" binding:"required,min=1,dive,gt=0"`
	Alternatives []CreateAlternativeRequest `json:"alternatives" binding:"required,min=2,max=6,dive"`
}

// Validate checks the same alternative invariants as creation.
func (r *UpdateQuestionRequest) Validate() []string {
	return validateAlternatives(r.QuestionType, r.Alternatives)
}

func validateAlternatives(questionType models.QuestionType, alternatives []CreateAlternativeRequest) []string {
	var errors []string

	correct := 0
	for _, alt := range alternatives {
		if alt.IsCorrect != nil && *alt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		errors = append(errors, "Exactly one alternative must be correct")
	}

	if questionType == models.QuestionTypeTrueFalse && len(alternatives) != 2 {
		errors = append(errors, "TRUE_FALSE questions must have exactly 2 alternatives")
	}

	if len(alternatives) < 2 || len(alternatives) > 6 {
		errors = append(errors, fmt.Sprintf("Must have between 2 and 6 alternatives, got %d", len(alternatives)))
	}

	return errors
}

// AlternativeResponse represents one selectable choice. The correctness
// flag is never exposed through listings.
type AlternativeResponse struct {
	ID    uuid.UUID `json:"id"`
	Body  string    `json:"body"`
	Label string    `json:"label" example:"A"`
	Ord   int16     `json:"ord" example:"1"`
}

// UserAnswerInfo annotates a question with the requesting user's answer
type UserAnswerInfo struct {
	AnswerID            uuid.UUID `json:"answerId"`
	ChosenAlternativeID uuid.UUID `json:"chosenAlternativeId"`
	IsCorrect           bool      `json:"isCorrect"`
	AnsweredAt          time.Time `json:"answeredAt"`
}

// QuestionResponse represents full question information with sorted alternatives
type QuestionResponse struct {
	ID           uuid.UUID             `json:"id"`
	Statement    string                `json:"statement"`
	Subject      SubjectResponse       `json:"subject"`
	Topics       []TopicResponse       `json:"topics"`
	Exam         *ExamSummaryResponse  `json:"exam,omitempty"`
	Year         *int16                `json:"year,omitempty"`
	QuestionType models.QuestionType   `json:"questionType"`
	IsActive     bool                  `json:"isActive"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	Alternatives []AlternativeResponse `json:"alternatives"`
	UserAnswer   *UserAnswerInfo       `json:"userAnswer,omitempty"`
}

// QuestionListResponse represents a paginated question listing
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	PaginationInfo
}

// QuestionFilterRequest represents question listing filter parameters.
// Multi-value filters left empty impose no restriction.
type QuestionFilterRequest struct {
	SubjectIDs   []int64  `form:"subjectIds"`
	Years        []int16  `form:"years"`
	QuestionType *string  `form:"questionType" binding:"omitempty,oneof=MULTIPLE_CHOICE TRUE_FALSE"`
	TopicIDs     []int64  `form:"topicIds"`
	AnswerStatus *string  `form:"answerStatus" binding:"omitempty,oneof=ANSWERED UNANSWERED CORRECT INCORRECT"`
	Page         int      `form:"page,default=0" binding:"min=0"`
	Size         int      `form:"size,default=20" binding:"min=1,max=100"`
}
