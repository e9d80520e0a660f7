package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/repositories"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/helpers"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// subjectStore is the persistence surface the subject service needs
type subjectStore interface {
	Create(ctx context.Context, subject *models.Subject) (int64, error)
	GetByID(ctx context.Context, id int64) (*repositories.SubjectWithCount, error)
	FindByNameIgnoreCase(ctx context.Context, name string) (*models.Subject, error)
	GetAll(ctx context.Context) ([]*repositories.SubjectWithCount, error)
	GetByExamSlug(ctx context.Context, slug string) ([]*repositories.SubjectWithCount, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// subjectTopicStore is the topic lookup surface the subject service needs
type subjectTopicStore interface {
	GetBySubjectIDs(ctx context.Context, subjectIDs []int64) (map[int64][]*models.Topic, error)
}

// SubjectService defines the interface for subject catalog operations
type SubjectService interface {
	Create(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.SubjectResponse, error)
	GetAll(ctx context.Context) ([]dto.SubjectResponse, error)
	GetByExamSlug(ctx context.Context, slug string) ([]dto.SubjectResponse, error)
	GetWithTopicsByExamSlug(ctx context.Context, slug string) (*dto.SubjectsWithTopicsResponse, error)
	Update(ctx context.Context, id int64, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id int64) error
}

type subjectServiceImpl struct {
	subjects subjectStore
	topics   subjectTopicStore
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjects subjectStore, topics subjectTopicStore) SubjectService {
	return &subjectServiceImpl{subjects: subjects, topics: topics}
}

// Create creates a new subject. Names are unique case-insensitively.
func (s *subjectServiceImpl) Create(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	name := helpers.NormalizeName(req.Name)

	existing, err := s.subjects.FindByNameIgnoreCase(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error checking subject name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewBusinessError(fmt.Sprintf("Subject with name '%s' already exists", name))
	}

	subject := &models.Subject{Name: name, ExamID: req.ExamID}
	if _, err := s.subjects.Create(ctx, subject); err != nil {
		if errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
			return nil, apperrors.NewBusinessError(fmt.Sprintf("Subject with name '%s' already exists", name))
		}
		return nil, fmt.Errorf("error creating subject: %w", err)
	}

	logger.Info().Int64("subjectID", subject.ID).Str("name", subject.Name).Msg("Subject created")
	resp := mapSubjectResponse(subject, 0)
	return &resp, nil
}

// GetByID retrieves a subject by id
func (s *subjectServiceImpl) GetByID(ctx context.Context, id int64) (*dto.SubjectResponse, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Subject not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	resp := mapSubjectResponse(&subject.Subject, subject.TopicsCount)
	return &resp, nil
}

// GetAll retrieves all subjects
func (s *subjectServiceImpl) GetAll(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjects.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	return mapSubjectResponses(subjects), nil
}

// GetByExamSlug retrieves the subjects linked to an exam
func (s *subjectServiceImpl) GetByExamSlug(ctx context.Context, slug string) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjects.GetByExamSlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects by exam: %w", err)
	}
	return mapSubjectResponses(subjects), nil
}

// GetWithTopicsByExamSlug returns the subjects of an exam nested with
// their topic summaries, loaded in two queries rather than per subject
func (s *subjectServiceImpl) GetWithTopicsByExamSlug(ctx context.Context, slug string) (*dto.SubjectsWithTopicsResponse, error) {
	subjects, err := s.subjects.GetByExamSlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects by exam: %w", err)
	}

	subjectIDs := make([]int64, 0, len(subjects))
	for _, subject := range subjects {
		subjectIDs = append(subjectIDs, subject.ID)
	}

	topicsBySubject, err := s.topics.GetBySubjectIDs(ctx, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("error retrieving topics: %w", err)
	}

	result := &dto.SubjectsWithTopicsResponse{
		ExamSlug: slug,
		Subjects: make([]dto.SubjectWithTopicsResponse, 0, len(subjects)),
	}
	for _, subject := range subjects {
		entry := dto.SubjectWithTopicsResponse{
			ID:     subject.ID,
			Name:   subject.Name,
			Topics: []dto.TopicSummaryResponse{},
		}
		for _, topic := range topicsBySubject[subject.ID] {
			entry.Topics = append(entry.Topics, dto.TopicSummaryResponse{ID: topic.ID, Name: topic.Name})
		}
		result.Subjects = append(result.Subjects, entry)
	}

	return result, nil
}

// Update renames a subject, keeping the case-insensitive uniqueness rule
func (s *subjectServiceImpl) Update(ctx context.Context, id int64, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Subject not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	name := helpers.NormalizeName(req.Name)
	existing, err := s.subjects.FindByNameIgnoreCase(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error checking subject name: %w", err)
	}
	if existing != nil && existing.ID != id {
		return nil, apperrors.NewBusinessError(fmt.Sprintf("Subject with name '%s' already exists", name))
	}

	updated := subject.Subject
	updated.Name = name
	if req.ExamID != nil {
		updated.ExamID = req.ExamID
	}

	if err := s.subjects.Update(ctx, &updated); err != nil {
		if errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
			return nil, apperrors.NewBusinessError(fmt.Sprintf("Subject with name '%s' already exists", name))
		}
		return nil, fmt.Errorf("error updating subject: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a subject and its topics
func (s *subjectServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Subject not found with id: %d", id))
		}
		return fmt.Errorf("error deleting subject: %w", err)
	}

	logger.Info().Int64("subjectID", id).Msg("Subject deleted")
	return nil
}

func mapSubjectResponse(subject *models.Subject, topicsCount int) dto.SubjectResponse {
	return dto.SubjectResponse{
		ID:          subject.ID,
		Name:        subject.Name,
		ExamID:      subject.ExamID,
		CreatedAt:   subject.CreatedAt,
		TopicsCount: topicsCount,
	}
}

func mapSubjectResponses(subjects []*repositories.SubjectWithCount) []dto.SubjectResponse {
	responses := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		responses = append(responses, mapSubjectResponse(&subject.Subject, subject.TopicsCount))
	}
	return responses
}
