package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserSubscriptionRequest represents subscription creation data,
// submitted by the billing integration
type CreateUserSubscriptionRequest struct {
	UserID               uuid.UUID `json:"userId" binding:"required"`
	ExamID               int64     `json:"examId" binding:"required,gt=0"`
	Plan                 *string   `json:"plan,omitempty" binding:"omitempty,max=50"`
	StripeCustomerID     *string   `json:"stripeCustomerId,omitempty" binding:"omitempty,max=150"`
	StripeSubscriptionID *string   `json:"stripeSubscriptionId,omitempty" binding:"omitempty,max=150"`
}

// UpdateUserSubscriptionStatusRequest represents a subscription status transition
type UpdateUserSubscriptionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=INACTIVE ACTIVE CANCELED"`
}

// UserSubscriptionResponse represents subscription information
type UserSubscriptionResponse struct {
	ID                   uuid.UUID `json:"id"`
	UserID               uuid.UUID `json:"userId"`
	ExamID               int64     `json:"examId"`
	Plan                 *string   `json:"plan,omitempty"`
	Status               string    `json:"status" example:"ACTIVE"`
	StripeCustomerID     *string   `json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID *string   `json:"stripeSubscriptionId,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
