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

// examStore is the persistence surface the exam service needs
type examStore interface {
	Create(ctx context.Context, exam *models.Exam) (int64, error)
	GetByID(ctx context.Context, id int64) (*repositories.ExamWithCount, error)
	GetBySlug(ctx context.Context, slug string) (*models.Exam, error)
	GetAll(ctx context.Context) ([]*repositories.ExamWithCount, error)
	GetAllSummaries(ctx context.Context) ([]*models.Exam, error)
	Update(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, id int64) error
}

// ExamService defines the interface for exam catalog operations
type ExamService interface {
	Create(ctx context.Context, req dto.CreateExamRequest) (*dto.ExamResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ExamResponse, error)
	GetBySlug(ctx context.Context, slug string) (*models.Exam, error)
	GetAll(ctx context.Context) ([]dto.ExamResponse, error)
	GetAllSummaries(ctx context.Context) ([]dto.ExamSummaryResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateExamRequest) (*dto.ExamResponse, error)
	Delete(ctx context.Context, id int64) error
}

type examServiceImpl struct {
	exams examStore
}

// NewExamService creates a new exam service instance
func NewExamService(exams examStore) ExamService {
	return &examServiceImpl{exams: exams}
}

// Create creates a new exam
func (s *examServiceImpl) Create(ctx context.Context, req dto.CreateExamRequest) (*dto.ExamResponse, error) {
	exam := &models.Exam{
		Name:        helpers.NormalizeName(req.Name),
		Slug:        helpers.NormalizeName(req.Slug),
		Institution: req.Institution,
		Description: req.Description,
	}

	if _, err := s.exams.Create(ctx, exam); err != nil {
		if errors.Is(err, apperrors.ErrExamSlugExists) {
			return nil, apperrors.NewBusinessError(fmt.Sprintf("Exam with slug '%s' already exists", exam.Slug))
		}
		return nil, fmt.Errorf("error creating exam: %w", err)
	}

	logger.Info().Int64("examID", exam.ID).Str("slug", exam.Slug).Msg("Exam created")
	resp := mapExamResponse(exam, 0)
	return &resp, nil
}

// GetByID retrieves an exam by id
func (s *examServiceImpl) GetByID(ctx context.Context, id int64) (*dto.ExamResponse, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Exam not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}

	resp := mapExamResponse(&exam.Exam, exam.QuestionCount)
	return &resp, nil
}

// GetBySlug retrieves an exam by slug
func (s *examServiceImpl) GetBySlug(ctx context.Context, slug string) (*models.Exam, error) {
	exam, err := s.exams.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Exam not found with slug: %s", slug))
		}
		return nil, fmt.Errorf("error retrieving exam by slug: %w", err)
	}
	return exam, nil
}

// GetAll retrieves all exams with question counts
func (s *examServiceImpl) GetAll(ctx context.Context) ([]dto.ExamResponse, error) {
	exams, err := s.exams.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving exams: %w", err)
	}

	responses := make([]dto.ExamResponse, 0, len(exams))
	for _, exam := range exams {
		responses = append(responses, mapExamResponse(&exam.Exam, exam.QuestionCount))
	}
	return responses, nil
}

// GetAllSummaries retrieves the condensed exam list
func (s *examServiceImpl) GetAllSummaries(ctx context.Context) ([]dto.ExamSummaryResponse, error) {
	exams, err := s.exams.GetAllSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving exam summaries: %w", err)
	}

	responses := make([]dto.ExamSummaryResponse, 0, len(exams))
	for _, exam := range exams {
		responses = append(responses, dto.ExamSummaryResponse{
			ID:          exam.ID,
			Name:        exam.Name,
			Slug:        exam.Slug,
			Institution: exam.Institution,
		})
	}
	return responses, nil
}

// Update applies a partial exam update: nil fields keep current values
func (s *examServiceImpl) Update(ctx context.Context, id int64, req dto.UpdateExamRequest) (*dto.ExamResponse, error) {
	existing, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Exam not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}

	exam := existing.Exam
	if req.Name != nil {
		exam.Name = helpers.NormalizeName(*req.Name)
	}
	if req.Institution != nil {
		exam.Institution = req.Institution
	}
	if req.Description != nil {
		exam.Description = req.Description
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}

	if err := s.exams.Update(ctx, &exam); err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Exam not found with id: %d", id))
		}
		return nil, fmt.Errorf("error updating exam: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes an exam and its owned questions
func (s *examServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.exams.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Exam not found with id: %d", id))
		}
		return fmt.Errorf("error deleting exam: %w", err)
	}

	logger.Info().Int64("examID", id).Msg("Exam deleted")
	return nil
}

func mapExamResponse(exam *models.Exam, questionCount int) dto.ExamResponse {
	return dto.ExamResponse{
		ID:            exam.ID,
		Name:          exam.Name,
		Slug:          exam.Slug,
		Institution:   exam.Institution,
		Description:   exam.Description,
		IsActive:      exam.IsActive,
		CreatedAt:     exam.CreatedAt,
		UpdatedAt:     exam.UpdatedAt,
		QuestionCount: questionCount,
	}
}
