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

// AnswerRepository handles answer database operations
type AnswerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create records an answer. The unique index on (user_id, question_id)
// turns a concurrent duplicate submission into a deterministic conflict
// instead of a second row.
func (r *AnswerRepository) Create(ctx context.Context, answer *models.Answer) error {
	sql, args, err := r.sb.Insert("answers").
		Columns("id", "user_id", "question_id", "alternative_id", "is_correct").
		Values(answer.ID, answer.UserID, answer.QuestionID, answer.AlternativeID, answer.IsCorrect).
		Suffix("ON CONFLICT (user_id, question_id) DO NOTHING RETURNING answered_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create answer query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&answer.AnsweredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrQuestionAnswered
		}
		return fmt.Errorf("error creating answer: %w", err)
	}

	return nil
}

// FindByUserAndQuestion retrieves the user's latest answer for a
// question, or nil when none exists
func (r *AnswerRepository) FindByUserAndQuestion(ctx context.Context, userID, questionID uuid.UUID) (*models.Answer, error) {
	sql, args, err := r.sb.Select("id", "user_id", "question_id", "alternative_id", "is_correct", "answered_at").
		From("answers").
		Where(squirrel.Eq{"user_id": userID, "question_id": questionID}).
		OrderBy("answered_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find answer query: %w", err)
	}

	answer := &models.Answer{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&answer.ID, &answer.UserID, &answer.QuestionID,
		&answer.AlternativeID, &answer.IsCorrect, &answer.AnsweredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding answer: %w", err)
	}

	return answer, nil
}

// FindByUserAndQuestions retrieves the user's latest answers for a set
// of questions keyed by question id
func (r *AnswerRepository) FindByUserAndQuestions(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) (map[uuid.UUID]*models.Answer, error) {
	result := map[uuid.UUID]*models.Answer{}
	if len(questionIDs) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("DISTINCT ON (question_id) id", "user_id", "question_id", "alternative_id", "is_correct", "answered_at").
		From("answers").
		Where(squirrel.Eq{"user_id": userID, "question_id": questionIDs}).
		OrderBy("question_id", "answered_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find answers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		answer := &models.Answer{}
		if err := rows.Scan(&answer.ID, &answer.UserID, &answer.QuestionID,
			&answer.AlternativeID, &answer.IsCorrect, &answer.AnsweredAt); err != nil {
			return nil, fmt.Errorf("error scanning answer row: %w", err)
		}
		result[answer.QuestionID] = answer
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answer rows: %w", err)
	}

	return result, nil
}

// GetByUserID retrieves all answers of a user, latest first
func (r *AnswerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Answer, error) {
	sql, args, err := r.sb.Select("id", "user_id", "question_id", "alternative_id", "is_correct", "answered_at").
		From("answers").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("answered_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user answers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying user answers: %w", err)
	}
	defer rows.Close()

	answers := []*models.Answer{}
	for rows.Next() {
		answer := &models.Answer{}
		if err := rows.Scan(&answer.ID, &answer.UserID, &answer.QuestionID,
			&answer.AlternativeID, &answer.IsCorrect, &answer.AnsweredAt); err != nil {
			return nil, fmt.Errorf("error scanning answer row: %w", err)
		}
		answers = append(answers, answer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answer rows: %w", err)
	}

	return answers, nil
}

// CountByUserID returns total and correct answer counts for a user
func (r *AnswerRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (total int64, correct int64, err error) {
	sql, args, err := r.sb.Select("COUNT(*)", "COUNT(*) FILTER (WHERE is_correct)").
		From("answers").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build answer counts query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting answers: %w", err)
	}

	return total, correct, nil
}
