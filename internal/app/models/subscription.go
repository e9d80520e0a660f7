package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSubscription defines the subscription model based on the
// 'user_subscriptions' table
type UserSubscription struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	UserID               uuid.UUID `json:"userId" db:"user_id"`
	ExamID               int64     `json:"examId" db:"exam_id"`
	Plan                 *string   `json:"plan,omitempty" db:"plan"`
	Status               string    `json:"status" db:"status"`
	StripeCustomerID     *string   `json:"stripeCustomerId,omitempty" db:"stripe_customer_id"`
	StripeSubscriptionID *string   `json:"stripeSubscriptionId,omitempty" db:"stripe_subscription_id"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}

// IsActive reports whether the subscription currently grants access.
func (s *UserSubscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}
