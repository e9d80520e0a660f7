package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/app/repositories"
	"github.com/questionmaster/api/internal/pkg/apperrors"
)

type fakeQuestionStore struct {
	questions    map[uuid.UUID]*models.Question
	topicLinks   map[uuid.UUID][]int64
	alternatives map[uuid.UUID][]models.Alternative
	listResult   []*models.Question
	listTotal    int64
	lastFilter   repositories.QuestionFilter
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{
		questions:    map[uuid.UUID]*models.Question{},
		topicLinks:   map[uuid.UUID][]int64{},
		alternatives: map[uuid.UUID][]models.Alternative{},
	}
}

func (f *fakeQuestionStore) Create(ctx context.Context, question *models.Question, topicIDs []int64, alternatives []models.Alternative) error {
	f.questions[question.ID] = question
	f.topicLinks[question.ID] = topicIDs
	f.alternatives[question.ID] = alternatives
	return nil
}

func (f *fakeQuestionStore) Update(ctx context.Context, question *models.Question, topicIDs []int64, alternatives []models.Alternative) error {
	if _, ok := f.questions[question.ID]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	f.questions[question.ID] = question
	f.topicLinks[question.ID] = topicIDs
	f.alternatives[question.ID] = alternatives
	return nil
}

func (f *fakeQuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.questions[id]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	return q, nil
}

func (f *fakeQuestionStore) List(ctx context.Context, filter repositories.QuestionFilter) ([]*models.Question, int64, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeQuestionStore) GetAlternativesByQuestionIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.Alternative, error) {
	out := map[uuid.UUID][]models.Alternative{}
	for _, id := range ids {
		if alts, ok := f.alternatives[id]; ok {
			out[id] = alts
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) GetTopicsByQuestionIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*models.Topic, error) {
	return map[uuid.UUID][]*models.Topic{}, nil
}

type fakeCatalogStore struct {
	subjects map[int64]*models.Subject
	topics   map[int64]*models.Topic
	exams    map[int64]*models.Exam
	bySlug   map[string]*models.Exam
	users    map[uuid.UUID]*models.User
}

func (f *fakeCatalogStore) GetSubjectsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Subject, error) {
	out := map[int64]*models.Subject{}
	for _, id := range ids {
		if s, ok := f.subjects[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeCatalogStore) GetTopicsByIDs(ctx context.Context, ids []int64) ([]*models.Topic, error) {
	out := []*models.Topic{}
	for _, id := range ids {
		if t, ok := f.topics[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeCatalogStore) GetExamsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Exam, error) {
	out := map[int64]*models.Exam{}
	for _, id := range ids {
		if e, ok := f.exams[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (f *fakeCatalogStore) GetExamBySlug(ctx context.Context, slug string) (*models.Exam, error) {
	e, ok := f.bySlug[slug]
	if !ok {
		return nil, apperrors.ErrExamNotFound
	}
	return e, nil
}

func (f *fakeCatalogStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

type fakeAnswerLookup struct {
	answers map[uuid.UUID]*models.Answer
}

func (f *fakeAnswerLookup) FindByUserAndQuestions(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) (map[uuid.UUID]*models.Answer, error) {
	if f.answers == nil {
		return map[uuid.UUID]*models.Answer{}, nil
	}
	return f.answers, nil
}

func boolPtr(b bool) *bool { return &b }

func validCreateRequest(adminID uuid.UUID) dto.CreateQuestionRequest {
	return dto.CreateQuestionRequest{
		Statement:    "What is the capital of France?",
		SubjectID:    1,
		QuestionType: models.QuestionTypeMultipleChoice,
		TopicIDs:     []int64{10},
		Alternatives: []dto.CreateAlternativeRequest{
			{Body: "Paris", IsCorrect: boolPtr(true)},
			{Body: "Lyon", IsCorrect: boolPtr(false)},
			{Body: "Nice", IsCorrect: boolPtr(false)},
		},
	}
}

func newQuestionFixture() (*fakeQuestionStore, *fakeCatalogStore, uuid.UUID, QuestionService) {
	store := newFakeQuestionStore()
	adminID := uuid.New()
	examID := int64(5)
	catalog := &fakeCatalogStore{
		subjects: map[int64]*models.Subject{1: {ID: 1, Name: "Geography"}},
		topics:   map[int64]*models.Topic{10: {ID: 10, SubjectID: 1, Name: "Capitals"}},
		exams:    map[int64]*models.Exam{examID: {ID: examID, Name: "ENEM", Slug: "enem"}},
		bySlug:   map[string]*models.Exam{"enem": {ID: examID, Name: "ENEM", Slug: "enem"}},
		users:    map[uuid.UUID]*models.User{adminID: {ID: adminID, Role: models.RoleAdmin}},
	}
	svc := NewQuestionService(store, catalog, &fakeAnswerLookup{})
	return store, catalog, adminID, svc
}

func TestCreateQuestion(t *testing.T) {
	store, _, adminID, svc := newQuestionFixture()

	resp, err := svc.Create(context.Background(), validCreateRequest(adminID), adminID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !resp.IsActive {
		t.Error("new question should be active")
	}
	if len(resp.Alternatives) != 3 {
		t.Fatalf("alternatives = %d, want 3", len(resp.Alternatives))
	}
	// Ord is the 1-based submission position, labels A, B, C derive from it.
	for i, alt := range resp.Alternatives {
		if int(alt.Ord) != i+1 {
			t.Errorf("alternative %d ord = %d, want %d", i, alt.Ord, i+1)
		}
	}
	if resp.Alternatives[0].Label != "A" || resp.Alternatives[2].Label != "C" {
		t.Errorf("labels = %s..%s, want A..C", resp.Alternatives[0].Label, resp.Alternatives[2].Label)
	}

	stored := store.questions[resp.ID]
	if stored == nil || stored.CreatedBy == nil || *stored.CreatedBy != adminID {
		t.Error("created question does not record its creator")
	}
}

func TestCreateQuestionAggregatesViolations(t *testing.T) {
	_, _, adminID, svc := newQuestionFixture()

	req := validCreateRequest(adminID)
	req.QuestionType = models.QuestionTypeTrueFalse // 3 alternatives, two violations at once
	req.Alternatives[1].IsCorrect = boolPtr(true)

	_, err := svc.Create(context.Background(), req, adminID)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want validation failure", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "one alternative must be correct") || !strings.Contains(msg, "exactly 2 alternatives") {
		t.Errorf("message %q should report both violations", msg)
	}
}

func TestCreateQuestionMissingTopics(t *testing.T) {
	_, _, adminID, svc := newQuestionFixture()

	req := validCreateRequest(adminID)
	req.TopicIDs = []int64{10, 99, 100}

	_, err := svc.Create(context.Background(), req, adminID)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("err = %v, want resource not found", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "99") || !strings.Contains(msg, "100") {
		t.Errorf("message %q should name the missing topic ids", msg)
	}
}

func TestCreateQuestionUnknownSubject(t *testing.T) {
	_, _, adminID, svc := newQuestionFixture()

	req := validCreateRequest(adminID)
	req.SubjectID = 42

	_, err := svc.Create(context.Background(), req, adminID)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("err = %v, want resource not found", err)
	}
}

func TestListQuestionsUnknownExam(t *testing.T) {
	_, _, _, svc := newQuestionFixture()

	_, err := svc.List(context.Background(), "nope", dto.QuestionFilterRequest{Size: 20}, nil)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("err = %v, want resource not found", err)
	}
}

func TestListQuestionsBuildsFilter(t *testing.T) {
	store, _, _, svc := newQuestionFixture()
	userID := uuid.New()
	status := "CORRECT"

	req := dto.QuestionFilterRequest{
		SubjectIDs:   []int64{1},
		AnswerStatus: &status,
		Page:         2,
		Size:         20,
	}
	if _, err := svc.List(context.Background(), "enem", req, &userID); err != nil {
		t.Fatalf("list: %v", err)
	}

	got := store.lastFilter
	if got.ExamID == nil || *got.ExamID != 5 {
		t.Errorf("filter exam id = %v, want 5", got.ExamID)
	}
	if got.AnswerStatus == nil || *got.AnswerStatus != models.AnswerStatusCorrect {
		t.Errorf("filter answer status = %v, want CORRECT", got.AnswerStatus)
	}
	if got.Offset != 40 || got.Limit != 20 {
		t.Errorf("filter paging = (%d, %d), want (40, 20)", got.Offset, got.Limit)
	}
}

func TestListQuestionsIgnoresAnswerStatusForAnonymous(t *testing.T) {
	store, _, _, svc := newQuestionFixture()
	status := "ANSWERED"

	req := dto.QuestionFilterRequest{AnswerStatus: &status, Size: 20}
	if _, err := svc.List(context.Background(), "enem", req, nil); err != nil {
		t.Fatalf("list: %v", err)
	}

	if store.lastFilter.AnswerStatus != nil {
		t.Error("answer status filter should be dropped without a user")
	}
}

func TestUpdateQuestionReplacesSets(t *testing.T) {
	store, catalog, adminID, svc := newQuestionFixture()

	created, err := svc.Create(context.Background(), validCreateRequest(adminID), adminID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	catalog.topics[11] = &models.Topic{ID: 11, SubjectID: 1, Name: "Rivers"}
	update := dto.UpdateQuestionRequest{
		Statement:    "Which river crosses Paris?",
		SubjectID:    1,
		QuestionType: models.QuestionTypeMultipleChoice,
		TopicIDs:     []int64{11},
		IsActive:     boolPtr(false),
		Alternatives: []dto.CreateAlternativeRequest{
			{Body: "Seine", IsCorrect: boolPtr(true)},
			{Body: "Rhone", IsCorrect: boolPtr(false)},
		},
	}

	resp, err := svc.Update(context.Background(), created.ID, update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if resp.IsActive {
		t.Error("IsActive = true, want false")
	}
	if len(store.alternatives[created.ID]) != 2 {
		t.Errorf("stored alternatives = %d, want 2", len(store.alternatives[created.ID]))
	}
	if links := store.topicLinks[created.ID]; len(links) != 1 || links[0] != 11 {
		t.Errorf("topic links = %v, want [11]", links)
	}
}

func TestDeleteQuestionNotFound(t *testing.T) {
	_, _, _, svc := newQuestionFixture()

	err := svc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("err = %v, want resource not found", err)
	}
}
