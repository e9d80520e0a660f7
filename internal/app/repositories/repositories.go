package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ExamRepository         *ExamRepository
	SubjectRepository      *SubjectRepository
	TopicRepository        *TopicRepository
	QuestionRepository     *QuestionRepository
	AnswerRepository       *AnswerRepository
	SubscriptionRepository *SubscriptionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ExamRepository:         NewExamRepository(db),
		SubjectRepository:      NewSubjectRepository(db),
		TopicRepository:        NewTopicRepository(db),
		QuestionRepository:     NewQuestionRepository(db),
		AnswerRepository:       NewAnswerRepository(db),
		SubscriptionRepository: NewSubscriptionRepository(db),
	}
}
