package models

// AppRole defines the user role type
type AppRole string

const (
	RoleUser  AppRole = "USER"
	RoleAdmin AppRole = "ADMIN"
)

// QuestionType classifies a question by its answering mode
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
)

// IsValid reports whether the question type is one of the known values
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse:
		return true
	}
	return false
}

// AnswerStatus classifies a user's relationship to a question based on
// their latest answer
type AnswerStatus string

const (
	AnswerStatusAnswered   AnswerStatus = "ANSWERED"
	AnswerStatusUnanswered AnswerStatus = "UNANSWERED"
	AnswerStatusCorrect    AnswerStatus = "CORRECT"
	AnswerStatusIncorrect  AnswerStatus = "INCORRECT"
)

// IsValid reports whether the answer status is one of the known values
func (s AnswerStatus) IsValid() bool {
	switch s {
	case AnswerStatusAnswered, AnswerStatusUnanswered, AnswerStatusCorrect, AnswerStatusIncorrect:
		return true
	}
	return false
}

// Subscription statuses
const (
	SubscriptionStatusInactive = "INACTIVE"
	SubscriptionStatusActive   = "ACTIVE"
	SubscriptionStatusCanceled = "CANCELED"
)
