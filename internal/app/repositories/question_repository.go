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
	"github.com/questionmaster/api/internal/db"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// QuestionFilter collects the listing restrictions. Empty slices impose
// no restriction; each populated dimension is ANDed with the others.
type QuestionFilter struct {
	ExamID       *int64
	SubjectIDs   []int64
	Years        []int16
	QuestionType *models.QuestionType
	TopicIDs     []int64
	UserID       *uuid.UUID
	AnswerStatus *models.AnswerStatus
	Offset       uint64
	Limit        int
}

// QuestionRepository handles question and alternative database operations
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const questionColumns = "q.id, q.statement, q.subject_id, q.exam_id, q.year, q.qtype, q.is_active, q.created_by, q.created_at, q.updated_at"

// Create persists a question with its topic links and alternatives in
// one transaction
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question, topicIDs []int64, alternatives []models.Alternative) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("questions").
			Columns("id", "statement", "subject_id", "exam_id", "year", "qtype", "is_active", "created_by").
			Values(question.ID, question.Statement, question.SubjectID, question.ExamID,
				question.Year, question.QuestionType, question.IsActive, question.CreatedBy).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create question query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&question.CreatedAt, &question.UpdatedAt); err != nil {
			logger.Error().Err(err).Str("questionID", question.ID.String()).Msg("Error executing create question query")
			return fmt.Errorf("error creating question: %w", err)
		}

		if err := r.insertTopicLinks(ctx, tx, question.ID, topicIDs); err != nil {
			return err
		}

		return r.insertAlternatives(ctx, tx, question.ID, alternatives)
	})
}

// Update rewrites a question. The topic set and alternative set replace
// the stored ones wholesale.
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question, topicIDs []int64, alternatives []models.Alternative) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Update("questions").
			SetMap(map[string]interface{}{
				"statement":  question.Statement,
				"subject_id": question.SubjectID,
				"exam_id":    question.ExamID,
				"year":       question.Year,
				"qtype":      question.QuestionType,
				"is_active":  question.IsActive,
				"updated_at": squirrel.Expr("NOW()"),
			}).
			Where(squirrel.Eq{"id": question.ID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update question query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&question.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrQuestionNotFound
			}
			logger.Error().Err(err).Str("questionID", question.ID.String()).Msg("Error executing update question query")
			return fmt.Errorf("error updating question: %w", err)
		}

		for _, table := range []string{"question_topics", "alternatives"} {
			delSql, delArgs, err := r.sb.Delete(table).
				Where(squirrel.Eq{"question_id": question.ID}).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build clear %s query: %w", table, err)
			}
			if _, err := tx.Exec(ctx, delSql, delArgs...); err != nil {
				return fmt.Errorf("error clearing %s: %w", table, err)
			}
		}

		if err := r.insertTopicLinks(ctx, tx, question.ID, topicIDs); err != nil {
			return err
		}

		return r.insertAlternatives(ctx, tx, question.ID, alternatives)
	})
}

func (r *QuestionRepository) insertTopicLinks(ctx context.Context, tx pgx.Tx, questionID uuid.UUID, topicIDs []int64) error {
	if len(topicIDs) == 0 {
		return nil
	}

	insert := r.sb.Insert("question_topics").Columns("question_id", "topic_id")
	for _, topicID := range topicIDs {
		insert = insert.Values(questionID, topicID)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert topic links query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error linking topics: %w", err)
	}
	return nil
}

func (r *QuestionRepository) insertAlternatives(ctx context.Context, tx pgx.Tx, questionID uuid.UUID, alternatives []models.Alternative) error {
	insert := r.sb.Insert("alternatives").Columns("id", "question_id", "body", "is_correct", "ord")
	for _, alt := range alternatives {
		insert = insert.Values(alt.ID, questionID, alt.Body, alt.IsCorrect, alt.Ord)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert alternatives query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating alternatives: %w", err)
	}
	return nil
}

// GetByID retrieves a question by id
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	sql, args, err := r.sb.Select(questionColumns).
		From("questions q").
		Where(squirrel.Eq{"q.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	question, err := scanQuestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		logger.Error().Err(err).Str("questionID", id.String()).Msg("Error scanning question row")
		return nil, fmt.Errorf("error getting question by id: %w", err)
	}

	return question, nil
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	question := &models.Question{}
	err := row.Scan(&question.ID, &question.Statement, &question.SubjectID, &question.ExamID,
		&question.Year, &question.QuestionType, &question.IsActive, &question.CreatedBy,
		&question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return question, nil
}

// buildQuestionListQuery translates a QuestionFilter into a paginated
// SELECT with a window total count. Only active questions are listed.
func buildQuestionListQuery(filter QuestionFilter) squirrel.SelectBuilder {
	query := squirrel.Select(questionColumns).
		Column("COUNT(*) OVER() AS total").
		From("questions q").
		Where(squirrel.Eq{"q.is_active": true}).
		PlaceholderFormat(squirrel.Dollar)

	if filter.ExamID != nil {
		query = query.Where(squirrel.Eq{"q.exam_id": *filter.ExamID})
	}
	if len(filter.SubjectIDs) > 0 {
		query = query.Where(squirrel.Eq{"q.subject_id": filter.SubjectIDs})
	}
	if len(filter.Years) > 0 {
		query = query.Where(squirrel.Eq{"q.year": filter.Years})
	}
	if filter.QuestionType != nil {
		query = query.Where(squirrel.Eq{"q.qtype": *filter.QuestionType})
	}
	if len(filter.TopicIDs) > 0 {
		query = query.Where("EXISTS (SELECT 1 FROM question_topics qt WHERE qt.question_id = q.id AND qt.topic_id = ANY(?))", filter.TopicIDs)
	}

	// Answer status restricts against the caller's latest answer. It is
	// ignored when no user is identified.
	if filter.UserID != nil && filter.AnswerStatus != nil {
		latest := "SELECT a.is_correct FROM answers a WHERE a.question_id = q.id AND a.user_id = ? ORDER BY a.answered_at DESC LIMIT 1"
		switch *filter.AnswerStatus {
		case models.AnswerStatusAnswered:
			query = query.Where("EXISTS ("+latest+")", *filter.UserID)
		case models.AnswerStatusUnanswered:
			query = query.Where("NOT EXISTS ("+latest+")", *filter.UserID)
		case models.AnswerStatusCorrect:
			query = query.Where("COALESCE(("+latest+"), FALSE)", *filter.UserID)
		case models.AnswerStatusIncorrect:
			query = query.Where("NOT COALESCE(("+latest+"), TRUE)", *filter.UserID)
		}
	}

	return query.OrderBy("q.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(filter.Offset)
}

// List retrieves a page of questions matching the filter together with
// the total match count
func (r *QuestionRepository) List(ctx context.Context, filter QuestionFilter) ([]*models.Question, int64, error) {
	sql, args, err := buildQuestionListQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list questions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying questions: %w", err)
	}
	defer rows.Close()

	questions := []*models.Question{}
	var total int64

	for rows.Next() {
		question := &models.Question{}
		err := rows.Scan(&question.ID, &question.Statement, &question.SubjectID, &question.ExamID,
			&question.Year, &question.QuestionType, &question.IsActive, &question.CreatedBy,
			&question.CreatedAt, &question.UpdatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating question rows: %w", err)
	}

	return questions, total, nil
}

// GetAlternativesByQuestionIDs loads alternatives for a set of
// questions keyed by question id, ordered by ord
func (r *QuestionRepository) GetAlternativesByQuestionIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.Alternative, error) {
	result := map[uuid.UUID][]models.Alternative{}
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("id", "question_id", "body", "is_correct", "ord", "created_at").
		From("alternatives").
		Where(squirrel.Eq{"question_id": ids}).
		OrderBy("question_id", "ord ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build alternatives query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying alternatives: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var alt models.Alternative
		if err := rows.Scan(&alt.ID, &alt.QuestionID, &alt.Body, &alt.IsCorrect, &alt.Ord, &alt.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning alternative row: %w", err)
		}
		result[alt.QuestionID] = append(result[alt.QuestionID], alt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alternative rows: %w", err)
	}

	return result, nil
}

// GetTopicsByQuestionIDs loads linked topics for a set of questions
// keyed by question id
func (r *QuestionRepository) GetTopicsByQuestionIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*models.Topic, error) {
	result := map[uuid.UUID][]*models.Topic{}
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("qt.question_id", "t.id", "t.subject_id", "t.name", "t.created_at", "s.name").
		From("question_topics qt").
		Join("topics t ON t.id = qt.topic_id").
		Join("subjects s ON s.id = t.subject_id").
		Where(squirrel.Eq{"qt.question_id": ids}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build question topics query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying question topics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var questionID uuid.UUID
		topic := &models.Topic{Subject: &models.Subject{}}
		if err := rows.Scan(&questionID, &topic.ID, &topic.SubjectID, &topic.Name, &topic.CreatedAt, &topic.Subject.Name); err != nil {
			return nil, fmt.Errorf("error scanning question topic row: %w", err)
		}
		topic.Subject.ID = topic.SubjectID
		result[questionID] = append(result[questionID], topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question topic rows: %w", err)
	}

	return result, nil
}

// GetAlternativeByID retrieves a single alternative
func (r *QuestionRepository) GetAlternativeByID(ctx context.Context, id uuid.UUID) (*models.Alternative, error) {
	sql, args, err := r.sb.Select("id", "question_id", "body", "is_correct", "ord", "created_at").
		From("alternatives").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get alternative query: %w", err)
	}

	var alt models.Alternative
	err = r.db.QueryRow(ctx, sql, args...).Scan(&alt.ID, &alt.QuestionID, &alt.Body, &alt.IsCorrect, &alt.Ord, &alt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAlternativeNotFound
		}
		return nil, fmt.Errorf("error getting alternative by id: %w", err)
	}

	return &alt, nil
}

// GetCorrectAlternative retrieves the single correct alternative of a
// question. Its absence signals corrupted data, not a caller mistake.
func (r *QuestionRepository) GetCorrectAlternative(ctx context.Context, questionID uuid.UUID) (*models.Alternative, error) {
	sql, args, err := r.sb.Select("id", "question_id", "body", "is_correct", "ord", "created_at").
		From("alternatives").
		Where(squirrel.Eq{"question_id": questionID, "is_correct": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build correct alternative query: %w", err)
	}

	var alt models.Alternative
	err = r.db.QueryRow(ctx, sql, args...).Scan(&alt.ID, &alt.QuestionID, &alt.Body, &alt.IsCorrect, &alt.Ord, &alt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoCorrectAlternative
		}
		return nil, fmt.Errorf("error getting correct alternative: %w", err)
	}

	return &alt, nil
}

// Delete removes a question. Alternatives, topic links and answers are
// removed by the FK cascades.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("questions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete question query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}
