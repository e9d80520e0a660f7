package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// ExamWithCount pairs an exam with its question count for listings
type ExamWithCount struct {
	models.Exam
	QuestionCount int
}

// ExamRepository handles exam database operations
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const examColumns = "e.id, e.name, e.slug, e.institution, e.description, e.is_active, e.created_at, e.updated_at"

// Create inserts a new exam and returns its generated id
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) (int64, error) {
	sql, args, err := r.sb.Insert("exams").
		Columns("name", "slug", "institution", "description").
		Values(exam.Name, exam.Slug, exam.Institution, exam.Description).
		Suffix("RETURNING id, is_active, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create exam query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exam.ID, &exam.IsActive, &exam.CreatedAt, &exam.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrExamSlugExists
		}
		logger.Error().Err(err).Str("slug", exam.Slug).Msg("Error executing create exam query")
		return 0, fmt.Errorf("error creating exam: %w", err)
	}

	return exam.ID, nil
}

func (r *ExamRepository) selectWithCount() squirrel.SelectBuilder {
	return r.sb.Select(examColumns).
		Column("(SELECT COUNT(*) FROM questions q WHERE q.exam_id = e.id) AS question_count").
		From("exams e")
}

func scanExamWithCount(row pgx.Row) (*ExamWithCount, error) {
	exam := &ExamWithCount{}
	err := row.Scan(&exam.ID, &exam.Name, &exam.Slug, &exam.Institution, &exam.Description,
		&exam.IsActive, &exam.CreatedAt, &exam.UpdatedAt, &exam.QuestionCount)
	if err != nil {
		return nil, err
	}
	return exam, nil
}

// GetByID retrieves an exam by id with its question count
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*ExamWithCount, error) {
	sql, args, err := r.selectWithCount().
		Where(squirrel.Eq{"e.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get exam query: %w", err)
	}

	exam, err := scanExamWithCount(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		logger.Error().Err(err).Int64("examID", id).Msg("Error scanning exam row")
		return nil, fmt.Errorf("error getting exam by id: %w", err)
	}

	return exam, nil
}

// GetBySlug retrieves an exam by its slug
func (r *ExamRepository) GetBySlug(ctx context.Context, slug string) (*models.Exam, error) {
	sql, args, err := r.sb.Select(examColumns).
		From("exams e").
		Where(squirrel.Eq{"e.slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get exam by slug query: %w", err)
	}

	exam := &models.Exam{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exam.ID, &exam.Name, &exam.Slug, &exam.Institution,
		&exam.Description, &exam.IsActive, &exam.CreatedAt, &exam.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error getting exam by slug: %w", err)
	}

	return exam, nil
}

// GetAll retrieves all exams with question counts, newest first
func (r *ExamRepository) GetAll(ctx context.Context) ([]*ExamWithCount, error) {
	sql, args, err := r.selectWithCount().
		OrderBy("e.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying exams: %w", err)
	}
	defer rows.Close()

	exams := []*ExamWithCount{}
	for rows.Next() {
		exam, err := scanExamWithCount(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		exams = append(exams, exam)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exam rows: %w", err)
	}

	return exams, nil
}

// GetAllSummaries retrieves the condensed exam list ordered by name
func (r *ExamRepository) GetAllSummaries(ctx context.Context) ([]*models.Exam, error) {
	sql, args, err := r.sb.Select("id", "name", "slug", "institution").
		From("exams").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build exam summaries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying exam summaries: %w", err)
	}
	defer rows.Close()

	exams := []*models.Exam{}
	for rows.Next() {
		exam := &models.Exam{}
		if err := rows.Scan(&exam.ID, &exam.Name, &exam.Slug, &exam.Institution); err != nil {
			return nil, fmt.Errorf("error scanning exam summary row: %w", err)
		}
		exams = append(exams, exam)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exam summary rows: %w", err)
	}

	return exams, nil
}

// GetByIDs retrieves exams for a set of ids keyed by id
func (r *ExamRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Exam, error) {
	result := map[int64]*models.Exam{}
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select(examColumns).
		From("exams e").
		Where(squirrel.Eq{"e.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build exams by ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying exams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		exam := &models.Exam{}
		if err := rows.Scan(&exam.ID, &exam.Name, &exam.Slug, &exam.Institution, &exam.Description,
			&exam.IsActive, &exam.CreatedAt, &exam.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		result[exam.ID] = exam
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exam rows: %w", err)
	}

	return result, nil
}

// Update overwrites the mutable exam fields. The slug is never updated.
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	sql, args, err := r.sb.Update("exams").
		SetMap(map[string]interface{}{
			"name":        exam.Name,
			"institution": exam.Institution,
			"description": exam.Description,
			"is_active":   exam.IsActive,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": exam.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update exam query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", exam.ID).Msg("Error executing update exam query")
		return fmt.Errorf("error updating exam: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}

	return nil
}

// Delete removes an exam. Owned questions go with it via the FK cascade;
// linked subjects are detached, not deleted.
func (r *ExamRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("exams").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete exam query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting exam: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}

	return nil
}
