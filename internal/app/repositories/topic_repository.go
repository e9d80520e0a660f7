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

// TopicRepository handles topic database operations
type TopicRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectWithSubject joins the owning subject so responses can carry its name
func (r *TopicRepository) selectWithSubject() squirrel.SelectBuilder {
	return r.sb.Select("t.id", "t.subject_id", "t.name", "t.created_at", "s.name").
		From("topics t").
		Join("subjects s ON s.id = t.subject_id")
}

func scanTopicWithSubject(row pgx.Row) (*models.Topic, error) {
	topic := &models.Topic{Subject: &models.Subject{}}
	err := row.Scan(&topic.ID, &topic.SubjectID, &topic.Name, &topic.CreatedAt, &topic.Subject.Name)
	if err != nil {
		return nil, err
	}
	topic.Subject.ID = topic.SubjectID
	return topic, nil
}

// Create inserts a new topic and returns its generated id
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) (int64, error) {
	sql, args, err := r.sb.Insert("topics").
		Columns("subject_id", "name").
		Values(topic.SubjectID, topic.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create topic query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&topic.ID, &topic.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrTopicAlreadyExists
		}
		logger.Error().Err(err).Str("name", topic.Name).Msg("Error executing create topic query")
		return 0, fmt.Errorf("error creating topic: %w", err)
	}

	return topic.ID, nil
}

// GetByID retrieves a topic with its owning subject
func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	sql, args, err := r.selectWithSubject().
		Where(squirrel.Eq{"t.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get topic query: %w", err)
	}

	topic, err := scanTopicWithSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTopicNotFound
		}
		return nil, fmt.Errorf("error getting topic by id: %w", err)
	}

	return topic, nil
}

// FindBySubjectAndNameIgnoreCase retrieves a topic by case-insensitive
// name within a subject, returning nil when none matches
func (r *TopicRepository) FindBySubjectAndNameIgnoreCase(ctx context.Context, subjectID int64, name string) (*models.Topic, error) {
	sql, args, err := r.sb.Select("id", "subject_id", "name", "created_at").
		From("topics").
		Where(squirrel.Eq{"subject_id": subjectID}).
		Where("LOWER(name) = LOWER(?)", name).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find topic by name query: %w", err)
	}

	topic := &models.Topic{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&topic.ID, &topic.SubjectID, &topic.Name, &topic.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding topic by name: %w", err)
	}

	return topic, nil
}

// GetAll retrieves all topics with their subjects
func (r *TopicRepository) GetAll(ctx context.Context) ([]*models.Topic, error) {
	sql, args, err := r.selectWithSubject().
		OrderBy("s.name ASC", "t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all topics query: %w", err)
	}

	return r.queryTopics(ctx, sql, args)
}

// GetBySubjectID retrieves all topics owned by a subject
func (r *TopicRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Topic, error) {
	sql, args, err := r.selectWithSubject().
		Where(squirrel.Eq{"t.subject_id": subjectID}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build topics by subject query: %w", err)
	}

	return r.queryTopics(ctx, sql, args)
}

// GetBySubjectIDs retrieves topics for a set of subjects keyed by subject id
func (r *TopicRepository) GetBySubjectIDs(ctx context.Context, subjectIDs []int64) (map[int64][]*models.Topic, error) {
	result := map[int64][]*models.Topic{}
	if len(subjectIDs) == 0 {
		return result, nil
	}

	sql, args, err := r.selectWithSubject().
		Where(squirrel.Eq{"t.subject_id": subjectIDs}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build topics by subjects query: %w", err)
	}

	topics, err := r.queryTopics(ctx, sql, args)
	if err != nil {
		return nil, err
	}

	for _, topic := range topics {
		result[topic.SubjectID] = append(result[topic.SubjectID], topic)
	}
	return result, nil
}

// GetByIDs retrieves the topics matching the given ids. The caller is
// responsible for noticing missing ids by comparing lengths.
func (r *TopicRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Topic, error) {
	if len(ids) == 0 {
		return []*models.Topic{}, nil
	}

	sql, args, err := r.selectWithSubject().
		Where(squirrel.Eq{"t.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build topics by ids query: %w", err)
	}

	return r.queryTopics(ctx, sql, args)
}

func (r *TopicRepository) queryTopics(ctx context.Context, sql string, args []interface{}) ([]*models.Topic, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying topics: %w", err)
	}
	defer rows.Close()

	topics := []*models.Topic{}
	for rows.Next() {
		topic, err := scanTopicWithSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning topic row: %w", err)
		}
		topics = append(topics, topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topic rows: %w", err)
	}

	return topics, nil
}

// Update overwrites a topic's name and subject
func (r *TopicRepository) Update(ctx context.Context, topic *models.Topic) error {
	sql, args, err := r.sb.Update("topics").
		SetMap(map[string]interface{}{
			"subject_id": topic.SubjectID,
			"name":       topic.Name,
		}).
		Where(squirrel.Eq{"id": topic.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update topic query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrTopicAlreadyExists
		}
		logger.Error().Err(err).Int64("topicID", topic.ID).Msg("Error executing update topic query")
		return fmt.Errorf("error updating topic: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTopicNotFound
	}

	return nil
}

// Delete removes a topic
func (r *TopicRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("topics").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete topic query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting topic: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTopicNotFound
	}

	return nil
}
