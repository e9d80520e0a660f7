package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/questionmaster/api/internal/app/services"
	"github.com/questionmaster/api/internal/middleware"
)

// Controllers holds all controller instances
type Controllers struct {
	AuthController         *AuthController
	UserController         *UserController
	ExamController         *ExamController
	SubjectController      *SubjectController
	TopicController        *TopicController
	QuestionController     *QuestionController
	AnswerController       *AnswerController
	SubscriptionController *SubscriptionController
}

// NewControllers creates all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		AuthController:         NewAuthController(services.AuthService),
		UserController:         NewUserController(services.UserService),
		ExamController:         NewExamController(services.ExamService, services.SubjectService, services.QuestionService),
		SubjectController:      NewSubjectController(services.SubjectService),
		TopicController:        NewTopicController(services.TopicService),
		QuestionController:     NewQuestionController(services.QuestionService, services.AnswerService),
		AnswerController:       NewAnswerController(services.AnswerService),
		SubscriptionController: NewSubscriptionController(services.SubscriptionService),
	}
}

// currentUserID reads the authenticated user's ID placed in the context by
// the JWT middleware. The second value is false for anonymous requests.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// optionalUserID is a pointer variant for endpoints behind OptionalAuth.
func optionalUserID(ctx *gin.Context) *uuid.UUID {
	userID, ok := currentUserID(ctx)
	if !ok {
		return nil
	}
	return &userID
}
