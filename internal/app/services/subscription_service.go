package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/repositories"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// subscriptionStore is the persistence surface the subscription service needs
type subscriptionStore interface {
	Create(ctx context.Context, sub *models.UserSubscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserSubscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserSubscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// subscriptionUserStore is the user lookup surface the subscription service needs
type subscriptionUserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// subscriptionExamStore is the exam lookup surface the subscription service needs
type subscriptionExamStore interface {
	GetByID(ctx context.Context, id int64) (*repositories.ExamWithCount, error)
}

// SubscriptionService defines the interface for per-exam subscription tracking
type SubscriptionService interface {
	Create(ctx context.Context, req dto.CreateUserSubscriptionRequest) (*dto.UserSubscriptionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserSubscriptionResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.UserSubscriptionResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateUserSubscriptionStatusRequest) (*dto.UserSubscriptionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type subscriptionServiceImpl struct {
	subscriptions subscriptionStore
	users         subscriptionUserStore
	exams         subscriptionExamStore
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(subscriptions subscriptionStore, users subscriptionUserStore, exams subscriptionExamStore) SubscriptionService {
	return &subscriptionServiceImpl{
		subscriptions: subscriptions,
		users:         users,
		exams:         exams,
	}
}

// Create records a new subscription. It starts INACTIVE until the
// billing side confirms payment through a status update.
func (s *subscriptionServiceImpl) Create(ctx context.Context, req dto.CreateUserSubscriptionRequest) (*dto.UserSubscriptionResponse, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("User not found with id: %s", req.UserID))
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if _, err := s.exams.GetByID(ctx, req.ExamID); err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Exam not found with id: %d", req.ExamID))
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}

	sub := &models.UserSubscription{
		ID:                   uuid.New(),
		UserID:               req.UserID,
		ExamID:               req.ExamID,
		Plan:                 req.Plan,
		Status:               models.SubscriptionStatusInactive,
		StripeCustomerID:     req.StripeCustomerID,
		StripeSubscriptionID: req.StripeSubscriptionID,
	}

	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("error creating subscription: %w", err)
	}

	logger.Info().Str("subscriptionID", sub.ID.String()).Str("userID", sub.UserID.String()).
		Int64("examID", sub.ExamID).Msg("Subscription created")

	resp := mapSubscriptionResponse(sub)
	return &resp, nil
}

// GetByID retrieves a subscription by id
func (s *subscriptionServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserSubscriptionResponse, error) {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubscriptionNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Subscription not found with id: %s", id))
		}
		return nil, fmt.Errorf("error retrieving subscription: %w", err)
	}

	resp := mapSubscriptionResponse(sub)
	return &resp, nil
}

// ListByUser retrieves all subscriptions of a user
func (s *subscriptionServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.UserSubscriptionResponse, error) {
	subs, err := s.subscriptions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing subscriptions: %w", err)
	}

	responses := make([]dto.UserSubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		responses = append(responses, mapSubscriptionResponse(sub))
	}
	return responses, nil
}

// UpdateStatus transitions a subscription's status
func (s *subscriptionServiceImpl) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateUserSubscriptionStatusRequest) (*dto.UserSubscriptionResponse, error) {
	if err := s.subscriptions.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, apperrors.ErrSubscriptionNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Subscription not found with id: %s", id))
		}
		return nil, fmt.Errorf("error updating subscription status: %w", err)
	}

	logger.Info().Str("subscriptionID", id.String()).Str("status", req.Status).Msg("Subscription status updated")
	return s.GetByID(ctx, id)
}

// Delete removes a subscription
func (s *subscriptionServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.subscriptions.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrSubscriptionNotFound) {
			return apperrors.NewResourceNotFoundError(fmt.Sprintf("Subscription not found with id: %s", id))
		}
		return fmt.Errorf("error deleting subscription: %w", err)
	}

	logger.Info().Str("subscriptionID", id.String()).Msg("Subscription deleted")
	return nil
}

func mapSubscriptionResponse(sub *models.UserSubscription) dto.UserSubscriptionResponse {
	return dto.UserSubscriptionResponse{
		ID:                   sub.ID,
		UserID:               sub.UserID,
		ExamID:               sub.ExamID,
		Plan:                 sub.Plan,
		Status:               sub.Status,
		StripeCustomerID:     sub.StripeCustomerID,
		StripeSubscriptionID: sub.StripeSubscriptionID,
		CreatedAt:            sub.CreatedAt,
		UpdatedAt:            sub.UpdatedAt,
	}
}
