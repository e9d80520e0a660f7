package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// answerStore is the persistence surface the answer service needs
type answerStore interface {
	Create(ctx context.Context, answer *models.Answer) error
	FindByUserAndQuestion(ctx context.Context, userID, questionID uuid.UUID) (*models.Answer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Answer, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (total int64, correct int64, err error)
}

// answerQuestionStore is the question surface the answer service needs
type answerQuestionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error)
	GetAlternativeByID(ctx context.Context, id uuid.UUID) (*models.Alternative, error)
	GetCorrectAlternative(ctx context.Context, questionID uuid.UUID) (*models.Alternative, error)
}

// answerUserStore is the user lookup surface the answer service needs
type answerUserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AnswerService defines the interface for answer submission and statistics
type AnswerService interface {
	Submit(ctx context.Context, questionID, userID uuid.UUID, req dto.AnswerQuestionRequest) (*dto.AnswerResponse, error)
	GetUserAnswers(ctx context.Context, userID uuid.UUID) ([]dto.AnswerResponse, error)
	GetUserStats(ctx context.Context, userID uuid.UUID) (*dto.UserStatsResponse, error)
}

type answerServiceImpl struct {
	answers   answerStore
	questions answerQuestionStore
	users     answerUserStore
}

// NewAnswerService creates a new answer service instance
func NewAnswerService(answers answerStore, questions answerQuestionStore, users answerUserStore) AnswerService {
	return &answerServiceImpl{
		answers:   answers,
		questions: questions,
		users:     users,
	}
}

// Submit records the user's single answer for a question. Correctness
// is computed from the chosen alternative at submission time, and the
// correct alternative's id is always returned.
func (s *answerServiceImpl) Submit(ctx context.Context, questionID, userID uuid.UUID, req dto.AnswerQuestionRequest) (*dto.AnswerResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", userID))
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Question not found with id: %s", questionID))
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	if !question.IsActive {
		return nil, apperrors.NewBusinessError("Question is not active")
	}

	alternative, err := s.questions.GetAlternativeByID(ctx, req.AlternativeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlternativeNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Alternative not found with id: %s", req.AlternativeID))
		}
		return nil, fmt.Errorf("error retrieving alternative: %w", err)
	}

	// Cross-check: an existing alternative of another question is a
	// rule violation, not a missing resource.
	if alternative.QuestionID != questionID {
		return nil, apperrors.NewBusinessError("Alternative does not belong to this question")
	}

	// Reaching this state means the create-time invariant was violated
	// somewhere; surface it loudly instead of guessing.
	correct, err := s.questions.GetCorrectAlternative(ctx, questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCorrectAlternative) {
			return nil, fmt.Errorf("%w: question %s", apperrors.ErrNoCorrectAlternative, questionID)
		}
		return nil, fmt.Errorf("error retrieving correct alternative: %w", err)
	}

	answer := &models.Answer{
		ID:            uuid.New(),
		UserID:        userID,
		QuestionID:    questionID,
		AlternativeID: alternative.ID,
		IsCorrect:     alternative.IsCorrect,
	}

	if err := s.answers.Create(ctx, answer); err != nil {
		if errors.Is(err, apperrors.ErrQuestionAnswered) {
			return nil, apperrors.NewBusinessError("Question has already been answered by this user")
		}
		return nil, fmt.Errorf("error recording answer: %w", err)
	}

	logger.Info().Str("questionID", questionID.String()).Str("userID", userID.String()).
		Bool("correct", answer.IsCorrect).Msg("Answer recorded")

	return &dto.AnswerResponse{
		ID:                   answer.ID,
		QuestionID:           questionID,
		AlternativeID:        alternative.ID,
		IsCorrect:            answer.IsCorrect,
		AnsweredAt:           answer.AnsweredAt,
		CorrectAlternativeID: correct.ID,
	}, nil
}

// GetUserAnswers retrieves all answers of a user, latest first
func (s *answerServiceImpl) GetUserAnswers(ctx context.Context, userID uuid.UUID) ([]dto.AnswerResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", userID))
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	answers, err := s.answers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving answers: %w", err)
	}

	responses := make([]dto.AnswerResponse, 0, len(answers))
	for _, answer := range answers {
		correct, err := s.questions.GetCorrectAlternative(ctx, answer.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving correct alternative for question %s: %w", answer.QuestionID, err)
		}
		responses = append(responses, dto.AnswerResponse{
			ID:                   answer.ID,
			QuestionID:           answer.QuestionID,
			AlternativeID:        answer.AlternativeID,
			IsCorrect:            answer.IsCorrect,
			AnsweredAt:           answer.AnsweredAt,
			CorrectAlternativeID: correct.ID,
		})
	}

	return responses, nil
}

// GetUserStats computes a user's answering statistics. Accuracy is a
// percentage formatted to two decimals, "0.00" when there are no answers.
func (s *answerServiceImpl) GetUserStats(ctx context.Context, userID uuid.UUID) (*dto.UserStatsResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", userID))
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	total, correct, err := s.answers.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting answers: %w", err)
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total) * 100
	}

	return &dto.UserStatsResponse{
		TotalAnswers:     total,
		CorrectAnswers:   correct,
		IncorrectAnswers: total - correct,
		Accuracy:         fmt.Sprintf("%.2f", accuracy),
	}, nil
}
