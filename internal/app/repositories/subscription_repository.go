package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/pkg/apperrors"
)

// SubscriptionRepository handles user subscription database operations
type SubscriptionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const subscriptionColumns = "id, user_id, exam_id, plan, status, stripe_customer_id, stripe_subscription_id, created_at, updated_at"

func scanSubscription(row pgx.Row) (*models.UserSubscription, error) {
	sub := &models.UserSubscription{}
	err := row.Scan(&sub.ID, &sub.UserID, &sub.ExamID, &sub.Plan, &sub.Status,
		&sub.StripeCustomerID, &sub.StripeSubscriptionID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Create inserts a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.UserSubscription) error {
	sql, args, err := r.sb.Insert("user_subscriptions").
		Columns("id", "user_id", "exam_id", "plan", "status", "stripe_customer_id", "stripe_subscription_id").
		Values(sub.ID, sub.UserID, sub.ExamID, sub.Plan, sub.Status, sub.StripeCustomerID, sub.StripeSubscriptionID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create subscription query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating subscription: %w", err)
	}

	return nil
}

// GetByID retrieves a subscription by id
func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserSubscription, error) {
	sql, args, err := r.sb.Select(subscriptionColumns).
		From("user_subscriptions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subscription query: %w", err)
	}

	sub, err := scanSubscription(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("error getting subscription by id: %w", err)
	}

	return sub, nil
}

// ListByUser retrieves all subscriptions of a user, newest first
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserSubscription, error) {
	sql, args, err := r.sb.Select(subscriptionColumns).
		From("user_subscriptions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subscriptions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []*models.UserSubscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subscription row: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}

	return subs, nil
}

// UpdateStatus transitions a subscription's status
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	sql, args, err := r.sb.Update("user_subscriptions").
		SetMap(map[string]interface{}{
			"status":     status,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subscription query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating subscription: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubscriptionNotFound
	}

	return nil
}

// Delete removes a subscription
func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("user_subscriptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subscription query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting subscription: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubscriptionNotFound
	}

	return nil
}
