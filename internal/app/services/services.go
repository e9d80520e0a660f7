package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/repositories"
	"github.com/questionmaster/api/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService         AuthService
	UserService         UserService
	ExamService         ExamService
	SubjectService      SubjectService
	TopicService        TopicService
	QuestionService     QuestionService
	AnswerService       AnswerService
	SubscriptionService SubscriptionService
}

// NewServices wires all services on top of the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	userService := NewUserService(repos.UserRepository)

	catalog := &catalogLookup{
		subjects: repos.SubjectRepository,
		topics:   repos.TopicRepository,
		exams:    repos.ExamRepository,
		users:    repos.UserRepository,
	}

	return &Services{
		AuthService:         NewAuthService(userService, jwtService),
		UserService:         userService,
		ExamService:         NewExamService(repos.ExamRepository),
		SubjectService:      NewSubjectService(repos.SubjectRepository, repos.TopicRepository),
		TopicService:        NewTopicService(repos.TopicRepository, repos.SubjectRepository),
		QuestionService:     NewQuestionService(repos.QuestionRepository, catalog, repos.AnswerRepository),
		AnswerService:       NewAnswerService(repos.AnswerRepository, repos.QuestionRepository, repos.UserRepository),
		SubscriptionService: NewSubscriptionService(repos.SubscriptionRepository, repos.UserRepository, repos.ExamRepository),
	}
}

// catalogLookup adapts the catalog repositories to the reference-data
// surface the question service expects
type catalogLookup struct {
	subjects *repositories.SubjectRepository
	topics   *repositories.TopicRepository
	exams    *repositories.ExamRepository
	users    *repositories.UserRepository
}

func (c *catalogLookup) GetSubjectsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Subject, error) {
	return c.subjects.GetByIDs(ctx, ids)
}

func (c *catalogLookup) GetTopicsByIDs(ctx context.Context, ids []int64) ([]*models.Topic, error) {
	return c.topics.GetByIDs(ctx, ids)
}

func (c *catalogLookup) GetExamsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Exam, error) {
	return c.exams.GetByIDs(ctx, ids)
}

func (c *catalogLookup) GetExamBySlug(ctx context.Context, slug string) (*models.Exam, error) {
	return c.exams.GetBySlug(ctx, slug)
}

func (c *catalogLookup) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return c.users.GetByID(ctx, id)
}
