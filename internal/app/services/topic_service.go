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

// topicStore is the persistence surface the topic service needs
type topicStore interface {
	Create(ctx context.Context, topic *models.Topic) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Topic, error)
	FindBySubjectAndNameIgnoreCase(ctx context.Context, subjectID int64, name string) (*models.Topic, error)
	GetAll(ctx context.Context) ([]*models.Topic, error)
	GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Topic, error)
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id int64) error
}

// topicSubjectStore is the subject lookup surface the topic service needs
type topicSubjectStore interface {
	GetByID(ctx context.Context, id int64) (*repositories.SubjectWithCount, error)
}

// TopicService defines the interface for topic catalog operations
type TopicService interface {
	Create(ctx context.Context, req dto.CreateTopicRequest) (*dto.TopicResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TopicResponse, error)
	GetAll(ctx context.Context) ([]dto.TopicResponse, error)
	GetBySubject(ctx context.Context, subjectID int64) ([]dto.TopicResponse, error)
	Update(ctx context.Context, id int64, req dto.CreateTopicRequest) (*dto.TopicResponse, error)
	Delete(ctx context.Context, id int64) error
}

type topicServiceImpl struct {
	topics   topicStore
	subjects topicSubjectStore
}

// NewTopicService creates a new topic service instance
func NewTopicService(topics topicStore, subjects topicSubjectStore) TopicService {
	return &topicServiceImpl{topics: topics, subjects: subjects}
}

// Create creates a new topic. Names are unique case-insensitively
// within the owning subject.
func (s *topicServiceImpl) Create(ctx context.Context, req dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	subject, err := s.getSubject(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	name := helpers.NormalizeName(req.Name)
	if err := s.checkNameAvailable(ctx, req.SubjectID, name, 0); err != nil {
		return nil, err
	}

	topic := &models.Topic{SubjectID: req.SubjectID, Name: name}
	if _, err := s.topics.Create(ctx, topic); err != nil {
		if errors.Is(err, apperrors.ErrTopicAlreadyExists) {
			return nil, apperrors.NewBusinessError(fmt.Sprintf("Topic with name '%s' already exists in this subject", name))
		}
		return nil, fmt.Errorf("error creating topic: %w", err)
	}
	topic.Subject = &subject.Subject

	logger.Info().Int64("topicID", topic.ID).Str("name", topic.Name).Msg("Topic created")
	resp := mapTopicResponse(topic)
	return &resp, nil
}

// GetByID retrieves a topic by id
func (s *topicServiceImpl) GetByID(ctx context.Context, id int64) (*dto.TopicResponse, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTopicNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Topic not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving topic: %w", err)
	}

	resp := mapTopicResponse(topic)
	return &resp, nil
}

// GetAll retrieves all topics
func (s *topicServiceImpl) GetAll(ctx context.Context) ([]dto.TopicResponse, error) {
	topics, err := s.topics.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving topics: %w", err)
	}
	return mapTopicResponses(topics), nil
}

// GetBySubject retrieves all topics owned by a subject
func (s *topicServiceImpl) GetBySubject(ctx context.Context, subjectID int64) ([]dto.TopicResponse, error) {
	if _, err := s.getSubject(ctx, subjectID); err != nil {
		return nil, err
	}

	topics, err := s.topics.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving topics by subject: %w", err)
	}
	return mapTopicResponses(topics), nil
}

// Update moves or renames a topic, keeping the per-subject uniqueness rule
func (s *topicServiceImpl) Update(ctx context.Context, id int64, req dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTopicNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Topic not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving topic: %w", err)
	}

	if _, err := s.getSubject(ctx, req.SubjectID); err != nil {
		return nil, err
	}

	name := helpers.NormalizeName(req.Name)
	if err := s.checkNameAvailable(ctx, req.SubjectID, name, id); err != nil {
		return nil, err
	}

	topic.SubjectID = req.SubjectID
	topic.Name = name
	if err := s.topics.Update(ctx, topic); err != nil {
		if errors.Is(err, apperrors.ErrTopicAlreadyExists) {
			return nil, apperrors.NewBusinessError(fmt.Sprintf("Topic with name '%s' already exists in this subject", name))
		}
		return nil, fmt.Errorf("error updating topic: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a topic
func (s *topicServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.topics.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrTopicNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Topic not found with id: %d", id))
		}
		return fmt.Errorf("error deleting topic: %w", err)
	}

	logger.Info().Int64("topicID", id).Msg("Topic deleted")
	return nil
}

func (s *topicServiceImpl) getSubject(ctx context.Context, subjectID int64) (*repositories.SubjectWithCount, error) {
	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Subject not found with id: %d", subjectID))
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return subject, nil
}

// checkNameAvailable rejects a duplicate name within a subject. selfID
// exempts the topic being updated.
func (s *topicServiceImpl) checkNameAvailable(ctx context.Context, subjectID int64, name string, selfID int64) error {
	existing, err := s.topics.FindBySubjectAndNameIgnoreCase(ctx, subjectID, name)
	if err != nil {
		return fmt.Errorf("error checking topic name: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return apperrors.NewBusinessError(fmt.Sprintf("Topic with name '%s' already exists in this subject", name))
	}
	return nil
}

func mapTopicResponse(topic *models.Topic) dto.TopicResponse {
	resp := dto.TopicResponse{
		ID:        topic.ID,
		Name:      topic.Name,
		SubjectID: topic.SubjectID,
		CreatedAt: topic.CreatedAt,
	}
	if topic.Subject != nil {
		resp.SubjectName = topic.Subject.Name
	}
	return resp
}

func mapTopicResponses(topics []*models.Topic) []dto.TopicResponse {
	responses := make([]dto.TopicResponse, 0, len(topics))
	for _, topic := range topics {
		responses = append(responses, mapTopicResponse(topic))
	}
	return responses
}
