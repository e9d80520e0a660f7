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

// SubjectWithCount pairs a subject with its topic count for listings
type SubjectWithCount struct {
	models.Subject
	TopicsCount int
}

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *SubjectRepository) selectWithCount() squirrel.SelectBuilder {
	return r.sb.Select("s.id", "s.name", "s.exam_id", "s.created_at").
		Column("(SELECT COUNT(*) FROM topics t WHERE t.subject_id = s.id) AS topics_count").
		From("subjects s")
}

func scanSubjectWithCount(row pgx.Row) (*SubjectWithCount, error) {
	subject := &SubjectWithCount{}
	err := row.Scan(&subject.ID, &subject.Name, &subject.ExamID, &subject.CreatedAt, &subject.TopicsCount)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// Create inserts a new subject and returns its generated id
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "exam_id").
		Values(subject.Name, subject.ExamID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrSubjectAlreadyExists
		}
		logger.Error().Err(err).Str("name", subject.Name).Msg("Error executing create subject query")
		return 0, fmt.Errorf("error creating subject: %w", err)
	}

	return subject.ID, nil
}

// GetByID retrieves a subject by id with its topic count
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*SubjectWithCount, error) {
	sql, args, err := r.selectWithCount().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject, err := scanSubjectWithCount(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error getting subject by id: %w", err)
	}

	return subject, nil
}

// FindByNameIgnoreCase retrieves a subject by case-insensitive name,
// returning nil when none matches
func (r *SubjectRepository) FindByNameIgnoreCase(ctx context.Context, name string) (*models.Subject, error) {
	sql, args, err := r.sb.Select("id", "name", "exam_id", "created_at").
		From("subjects").
		Where("LOWER(name) = LOWER(?)", name).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find subject by name query: %w", err)
	}

	subject := &models.Subject{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.Name, &subject.ExamID, &subject.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding subject by name: %w", err)
	}

	return subject, nil
}

// GetAll retrieves all subjects with topic counts ordered by name
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*SubjectWithCount, error) {
	sql, args, err := r.selectWithCount().
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all subjects query: %w", err)
	}

	return r.querySubjects(ctx, sql, args)
}

// GetByExamSlug retrieves all subjects linked to the exam with the given slug
func (r *SubjectRepository) GetByExamSlug(ctx context.Context, slug string) ([]*SubjectWithCount, error) {
	sql, args, err := r.selectWithCount().
		Join("exams e ON e.id = s.exam_id").
		Where(squirrel.Eq{"e.slug": slug}).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subjects by exam query: %w", err)
	}

	return r.querySubjects(ctx, sql, args)
}

func (r *SubjectRepository) querySubjects(ctx context.Context, sql string, args []interface{}) ([]*SubjectWithCount, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []*SubjectWithCount{}
	for rows.Next() {
		subject, err := scanSubjectWithCount(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}

	return subjects, nil
}

// GetByIDs retrieves subjects for a set of ids keyed by id
func (r *SubjectRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Subject, error) {
	result := map[int64]*models.Subject{}
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("id", "name", "exam_id", "created_at").
		From("subjects").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subjects by ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.ExamID, &subject.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		result[subject.ID] = subject
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}

	return result, nil
}

// Update overwrites a subject's name and exam link
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Update("subjects").
		SetMap(map[string]interface{}{
			"name":    subject.Name,
			"exam_id": subject.ExamID,
		}).
		Where(squirrel.Eq{"id": subject.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrSubjectAlreadyExists
		}
		logger.Error().Err(err).Int64("subjectID", subject.ID).Msg("Error executing update subject query")
		return fmt.Errorf("error updating subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}

// Delete removes a subject. Owned topics are removed by the FK cascade.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
