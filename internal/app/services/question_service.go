package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/repositories"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/helpers"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// questionStore is the persistence surface the question service needs
type questionStore interface {
	Create(ctx context.Context, question *models.Question, topicIDs []int64, alternatives []models.Alternative) error
	Update(ctx context.Context, question *models.Question, topicIDs []int64, alternatives []models.Alternative) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error)
	List(ctx context.Context, filter repositories.QuestionFilter) ([]*models.Question, int64, error)
	GetAlternativesByQuestionIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.Alternative, error)
	GetTopicsByQuestionIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*models.Topic, error)
}

// questionCatalogStore resolves the reference data a question points at
type questionCatalogStore interface {
	GetSubjectsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Subject, error)
	GetTopicsByIDs(ctx context.Context, ids []int64) ([]*models.Topic, error)
	GetExamsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Exam, error)
	GetExamBySlug(ctx context.Context, slug string) (*models.Exam, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// questionAnswerLookup is the answer surface for per-user enrichment
type questionAnswerLookup interface {
	FindByUserAndQuestions(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) (map[uuid.UUID]*models.Answer, error)
}

// QuestionService defines the interface for question management and listing
type QuestionService interface {
	Create(ctx context.Context, req dto.CreateQuestionRequest, createdBy uuid.UUID) (*dto.QuestionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*dto.QuestionResponse, error)
	List(ctx context.Context, examSlug string, req dto.QuestionFilterRequest, userID *uuid.UUID) (*dto.QuestionListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type questionServiceImpl struct {
	questions questionStore
	catalog   questionCatalogStore
	answers   questionAnswerLookup
}

// NewQuestionService creates a new question service instance
func NewQuestionService(questions questionStore, catalog questionCatalogStore, answers questionAnswerLookup) QuestionService {
	return &questionServiceImpl{
		questions: questions,
		catalog:   catalog,
		answers:   answers,
	}
}

// Create validates and persists a new question with its alternatives.
// Alternative ord is the 1-based position in the submitted list.
func (s *questionServiceImpl) Create(ctx context.Context, req dto.CreateQuestionRequest, createdBy uuid.UUID) (*dto.QuestionResponse, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return nil, apperrors.NewValidationError("Validation failed: " + strings.Join(violations, ", "))
	}

	topicIDs, err := s.resolveTopics(ctx, req.TopicIDs)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveSubject(ctx, req.SubjectID); err != nil {
		return nil, err
	}
	if err := s.resolveExam(ctx, req.ExamID); err != nil {
		return nil, err
	}

	creator, err := s.catalog.GetUserByID(ctx, createdBy)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", createdBy))
		}
		return nil, fmt.Errorf("error retrieving creator: %w", err)
	}

	question := &models.Question{
		ID:           uuid.New(),
		Statement:    req.Statement,
		SubjectID:    req.SubjectID,
		ExamID:       req.ExamID,
		Year:         req.Year,
		QuestionType: req.QuestionType,
		IsActive:     true,
		CreatedBy:    &creator.ID,
	}

	alternatives := buildAlternatives(question.ID, req.Alternatives)
	if err := s.questions.Create(ctx, question, topicIDs, alternatives); err != nil {
		return nil, fmt.Errorf("error creating question: %w", err)
	}

	logger.Info().Str("questionID", question.ID.String()).Int64("subjectID", question.SubjectID).Msg("Question created")
	return s.GetByID(ctx, question.ID, nil)
}

// GetByID retrieves a question with its alternatives and topics. When a
// user is identified, their answer annotation is included.
func (s *questionServiceImpl) GetByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*dto.QuestionResponse, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Question not found with id: %s", id))
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	responses, err := s.enrich(ctx, []*models.Question{question}, userID)
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// List retrieves a page of active questions scoped to an exam slug. A
// populated filter dimension restricts the result; empty multi-value
// filters impose no restriction.
func (s *questionServiceImpl) List(ctx context.Context, examSlug string, req dto.QuestionFilterRequest, userID *uuid.UUID) (*dto.QuestionListResponse, error) {
	exam, err := s.catalog.GetExamBySlug(ctx, examSlug)
	if err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Exam not found with slug: %s", examSlug))
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(req.Page, req.Size)
	filter := repositories.QuestionFilter{
		ExamID:     &exam.ID,
		SubjectIDs: req.SubjectIDs,
		Years:      req.Years,
		TopicIDs:   req.TopicIDs,
		UserID:     userID,
		Offset:     offset,
		Limit:      limit,
	}
	if req.QuestionType != nil {
		questionType := models.QuestionType(*req.QuestionType)
		filter.QuestionType = &questionType
	}
	// Answer status needs an identified user, otherwise it is ignored.
	if req.AnswerStatus != nil && userID != nil {
		status := models.AnswerStatus(*req.AnswerStatus)
		filter.AnswerStatus = &status
	}

	questions, total, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}

	responses, err := s.enrich(ctx, questions, userID)
	if err != nil {
		return nil, err
	}

	return &dto.QuestionListResponse{
		Questions:      responses,
		PaginationInfo: helpers.NewPaginationInfo(total, req.Page, limit),
	}, nil
}

// Update validates and rewrites a question, replacing its topic and
// alternative sets wholesale
func (s *questionServiceImpl) Update(ctx context.Context, id uuid.UUID, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return nil, apperrors.NewValidationError("Validation failed: " + strings.Join(violations, ", "))
	}

	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Question not found with id: %s", id))
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	topicIDs, err := s.resolveTopics(ctx, req.TopicIDs)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveSubject(ctx, req.SubjectID); err != nil {
		return nil, err
	}
	if err := s.resolveExam(ctx, req.ExamID); err != nil {
		return nil, err
	}

	question.Statement = req.Statement
	question.SubjectID = req.SubjectID
	question.ExamID = req.ExamID
	question.Year = req.Year
	question.QuestionType = req.QuestionType
	question.IsActive = *req.IsActive

	alternatives := buildAlternatives(question.ID, req.Alternatives)
	if err := s.questions.Update(ctx, question, topicIDs, alternatives); err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Question not found with id: %s", id))
		}
		return nil, fmt.Errorf("error updating question: %w", err)
	}

	logger.Info().Str("questionID", id.String()).Msg("Question updated")
	return s.GetByID(ctx, id, nil)
}

// Delete hard-deletes a question together with its alternatives and answers
func (s *questionServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Question not found with id: %s", id))
		}
		return fmt.Errorf("error deleting question: %w", err)
	}

	logger.Info().Str("questionID", id.String()).Msg("Question deleted")
	return nil
}

// resolveTopics checks that every requested topic exists, reporting the
// missing ids when any do not
func (s *questionServiceImpl) resolveTopics(ctx context.Context, topicIDs []int64) ([]int64, error) {
	unique := make([]int64, 0, len(topicIDs))
	seen := map[int64]bool{}
	for _, id := range topicIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	topics, err := s.catalog.GetTopicsByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("error retrieving topics: %w", err)
	}

	if len(topics) != len(unique) {
		found := map[int64]bool{}
		for _, topic := range topics {
			found[topic.ID] = true
		}
		missing := []string{}
		for _, id := range unique {
			if !found[id] {
				missing = append(missing, fmt.Sprintf("%d", id))
			}
		}
		return nil, apperrors.NewResourceNotFoundError("Topics not found with ids: " + strings.Join(missing, ", "))
	}

	return unique, nil
}

func (s *questionServiceImpl) resolveSubject(ctx context.Context, subjectID int64) (*models.Subject, error) {
	subjects, err := s.catalog.GetSubjectsByIDs(ctx, []int64{subjectID})
	if err != nil {
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	subject, ok := subjects[subjectID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Subject not found with id: %d", subjectID))
	}
	return subject, nil
}

func (s *questionServiceImpl) resolveExam(ctx context.Context, examID *int64) error {
	if examID == nil {
		return nil
	}
	exams, err := s.catalog.GetExamsByIDs(ctx, []int64{*examID})
	if err != nil {
		return fmt.Errorf("error retrieving exam: %w", err)
	}
	if _, ok := exams[*examID]; !ok {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("Exam not found with id: %d", *examID))
	}
	return nil
}

func buildAlternatives(questionID uuid.UUID, requests []dto.CreateAlternativeRequest) []models.Alternative {
	alternatives := make([]models.Alternative, 0, len(requests))
	for i, alt := range requests {
		alternatives = append(alternatives, models.Alternative{
			ID:         uuid.New(),
			QuestionID: questionID,
			Body:       alt.Body,
			IsCorrect:  alt.IsCorrect != nil && *alt.IsCorrect,
			Ord:        int16(i + 1),
		})
	}
	return alternatives
}

// enrich assembles response shapes for a batch of questions, loading
// alternatives, topics, subjects, exams and the user's answers with one
// query per relation instead of one per question
func (s *questionServiceImpl) enrich(ctx context.Context, questions []*models.Question, userID *uuid.UUID) ([]dto.QuestionResponse, error) {
	questionIDs := make([]uuid.UUID, 0, len(questions))
	subjectIDSet := map[int64]bool{}
	examIDSet := map[int64]bool{}
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
		subjectIDSet[q.SubjectID] = true
		if q.ExamID != nil {
			examIDSet[*q.ExamID] = true
		}
	}

	alternatives, err := s.questions.GetAlternativesByQuestionIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading alternatives: %w", err)
	}
	topics, err := s.questions.GetTopicsByQuestionIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading topics: %w", err)
	}

	subjects, err := s.catalog.GetSubjectsByIDs(ctx, keys(subjectIDSet))
	if err != nil {
		return nil, fmt.Errorf("error loading subjects: %w", err)
	}
	exams, err := s.catalog.GetExamsByIDs(ctx, keys(examIDSet))
	if err != nil {
		return nil, fmt.Errorf("error loading exams: %w", err)
	}

	answers := map[uuid.UUID]*models.Answer{}
	if userID != nil {
		answers, err = s.answers.FindByUserAndQuestions(ctx, *userID, questionIDs)
		if err != nil {
			return nil, fmt.Errorf("error loading user answers: %w", err)
		}
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, mapQuestionResponse(q, subjects[q.SubjectID], topics[q.ID], exams, alternatives[q.ID], answers[q.ID]))
	}
	return responses, nil
}

func mapQuestionResponse(q *models.Question, subject *models.Subject, topics []*models.Topic, exams map[int64]*models.Exam, alternatives []models.Alternative, answer *models.Answer) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:           q.ID,
		Statement:    q.Statement,
		Year:         q.Year,
		QuestionType: q.QuestionType,
		IsActive:     q.IsActive,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
		Topics:       []dto.TopicResponse{},
		Alternatives: []dto.AlternativeResponse{},
	}

	if subject != nil {
		resp.Subject = dto.SubjectResponse{
			ID:        subject.ID,
			Name:      subject.Name,
			ExamID:    subject.ExamID,
			CreatedAt: subject.CreatedAt,
		}
	}

	if q.ExamID != nil {
		if exam, ok := exams[*q.ExamID]; ok {
			resp.Exam = &dto.ExamSummaryResponse{
				ID:          exam.ID,
				Name:        exam.Name,
				Slug:        exam.Slug,
				Institution: exam.Institution,
			}
		}
	}

	for _, topic := range topics {
		resp.Topics = append(resp.Topics, mapTopicResponse(topic))
	}

	sort.Slice(alternatives, func(i, j int) bool { return alternatives[i].Ord < alternatives[j].Ord })
	for _, alt := range alternatives {
		resp.Alternatives = append(resp.Alternatives, dto.AlternativeResponse{
			ID:    alt.ID,
			Body:  alt.Body,
			Label: alt.Label(),
			Ord:   alt.Ord,
		})
	}

	if answer != nil {
		resp.UserAnswer = &dto.UserAnswerInfo{
			AnswerID:            answer.ID,
			ChosenAlternativeID: answer.AlternativeID,
			IsCorrect:           answer.IsCorrect,
			AnsweredAt:          answer.AnsweredAt,
		}
	}

	return resp
}

func keys(set map[int64]bool) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
