package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questionmaster/api/internal/app/controllers"
	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
	internalAPIKey string,
) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctrl.AuthController.Login)
		auth.POST("/register", ctrl.AuthController.Register)
		auth.POST("/admin", ctrl.AuthController.RegisterAdmin)
	}

	// --- Exam routes ---
	// The whole subtree shares the :examSlug parameter; ID-based handlers
	// parse the same segment as an integer.
	exams := api.Group("/exams")
	{
		exams.GET("", ctrl.ExamController.GetAllExams)
		exams.GET("/summary", ctrl.ExamController.GetExamsSummary)
		exams.GET("/:examSlug", ctrl.ExamController.GetExamByID)
		exams.GET("/:examSlug/subjects", ctrl.ExamController.GetSubjectsByExam)
		exams.GET("/:examSlug/subjects/with-topics", ctrl.ExamController.GetSubjectsWithTopicsByExam)
		exams.GET("/:examSlug/questions", authMiddleware.OptionalAuth(), ctrl.ExamController.GetQuestionsByExam)

		examsAdmin := exams.Group("")
		examsAdmin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
		{
			examsAdmin.POST("", ctrl.ExamController.CreateExam)
			examsAdmin.PUT("/:examSlug", ctrl.ExamController.UpdateExam)
			examsAdmin.DELETE("/:examSlug", ctrl.ExamController.DeleteExam)
		}
	}

	// --- Subject routes ---
	subjects := api.Group("/subjects")
	{
		subjects.GET("", ctrl.SubjectController.GetSubjects)
		subjects.GET("/with-topics", ctrl.SubjectController.GetSubjectsWithTopics)
		subjects.GET("/:id", ctrl.SubjectController.GetSubjectByID)

		subjectsAdmin := subjects.Group("")
		subjectsAdmin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
		{
			subjectsAdmin.POST("", ctrl.SubjectController.CreateSubject)
			subjectsAdmin.PUT("/:id", ctrl.SubjectController.UpdateSubject)
			subjectsAdmin.DELETE("/:id", ctrl.SubjectController.DeleteSubject)
		}
	}

	// --- Topic routes ---
	topics := api.Group("/topics")
	{
		topics.GET("", ctrl.TopicController.GetAllTopics)
		topics.GET("/subject/:subjectId", ctrl.TopicController.GetTopicsBySubject)
		topics.GET("/:id", ctrl.TopicController.GetTopicByID)

		topicsAdmin := topics.Group("")
		topicsAdmin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
		{
			topicsAdmin.POST("", ctrl.TopicController.CreateTopic)
			topicsAdmin.PUT("/:id", ctrl.TopicController.UpdateTopic)
			topicsAdmin.DELETE("/:id", ctrl.TopicController.DeleteTopic)
		}
	}

	// --- Question routes ---
	questions := api.Group("/questions")
	{
		questions.GET("/:id", authMiddleware.OptionalAuth(), ctrl.QuestionController.GetQuestionByID)
		questions.POST("/:id/answer", authMiddleware.JWTAuth(), ctrl.QuestionController.AnswerQuestion)

		questionsAdmin := questions.Group("")
		questionsAdmin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
		{
			questionsAdmin.POST("", ctrl.QuestionController.CreateQuestion)
			questionsAdmin.PUT("/:id", ctrl.QuestionController.UpdateQuestion)
			questionsAdmin.DELETE("/:id", ctrl.QuestionController.DeleteQuestion)
		}
	}

	// --- Answer routes ---
	answers := api.Group("/answers")
	answers.Use(authMiddleware.JWTAuth())
	{
		answers.GET("/my-answers", ctrl.AnswerController.GetMyAnswers)
		answers.GET("/my-stats", ctrl.AnswerController.GetMyStats)
	}

	// --- User routes ---
	users := api.Group("/users")
	users.Use(authMiddleware.JWTAuth())
	{
		users.GET("/me", ctrl.UserController.GetMe)
		users.PUT("/me/display-name", ctrl.UserController.UpdateDisplayName)

		usersAdmin := users.Group("")
		usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			usersAdmin.GET("", ctrl.UserController.GetAllUsers)
			usersAdmin.PUT("/:userId/role", ctrl.UserController.UpdateRole)
			usersAdmin.DELETE("/:userId", ctrl.UserController.DeleteUser)
		}
	}

	// --- Subscription routes ---
	// Reads and delete are regular bearer-token endpoints; the billing-side
	// mutations live under /internal and authenticate with the service key.
	subscriptions := api.Group("/user-subscriptions")
	subscriptions.Use(authMiddleware.JWTAuth())
	{
		subscriptions.GET("", ctrl.SubscriptionController.ListSubscriptions)
		subscriptions.GET("/:id", ctrl.SubscriptionController.GetSubscriptionByID)
		subscriptions.DELETE("/:id", ctrl.SubscriptionController.DeleteSubscription)
	}

	internalGroup := api.Group("/internal")
	internalGroup.Use(middleware.APIKeyAuth(internalAPIKey))
	{
		internalSubs := internalGroup.Group("/user-subscriptions")
		{
			internalSubs.POST("", ctrl.SubscriptionController.CreateSubscription)
			internalSubs.PATCH("/:id/status", ctrl.SubscriptionController.UpdateSubscriptionStatus)
		}
	}
}
