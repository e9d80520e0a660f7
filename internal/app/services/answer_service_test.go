package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/pkg/apperrors"
)

type fakeAnswerStore struct {
	created  []*models.Answer
	existing map[uuid.UUID]map[uuid.UUID]*models.Answer // userID -> questionID
	byUser   []*models.Answer
	total    int64
	correct  int64
}

func (f *fakeAnswerStore) Create(ctx context.Context, answer *models.Answer) error {
	if byQuestion, ok := f.existing[answer.UserID]; ok {
		if _, dup := byQuestion[answer.QuestionID]; dup {
			return apperrors.ErrQuestionAnswered
		}
	}
	answer.AnsweredAt = time.Now()
	f.created = append(f.created, answer)
	return nil
}

func (f *fakeAnswerStore) FindByUserAndQuestion(ctx context.Context, userID, questionID uuid.UUID) (*models.Answer, error) {
	if byQuestion, ok := f.existing[userID]; ok {
		return byQuestion[questionID], nil
	}
	return nil, nil
}

func (f *fakeAnswerStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Answer, error) {
	return f.byUser, nil
}

func (f *fakeAnswerStore) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	return f.total, f.correct, nil
}

type fakeAnswerQuestionStore struct {
	questions    map[uuid.UUID]*models.Question
	alternatives map[uuid.UUID]*models.Alternative
	correctByQ   map[uuid.UUID]*models.Alternative
}

func (f *fakeAnswerQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	return q, nil
}

func (f *fakeAnswerQuestionStore) GetAlternativeByID(ctx context.Context, id uuid.UUID) (*models.Alternative, error) {
	alt, ok := f.alternatives[id]
	if !ok {
		return nil, apperrors.ErrAlternativeNotFound
	}
	return alt, nil
}

func (f *fakeAnswerQuestionStore) GetCorrectAlternative(ctx context.Context, questionID uuid.UUID) (*models.Alternative, error) {
	alt, ok := f.correctByQ[questionID]
	if !ok {
		return nil, apperrors.ErrNoCorrectAlternative
	}
	return alt, nil
}

type fakeUserLookup struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserLookup) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

type answerFixture struct {
	svc        AnswerService
	answers    *fakeAnswerStore
	userID     uuid.UUID
	questionID uuid.UUID
	chosen     *models.Alternative
	correct    *models.Alternative
}

func newAnswerFixture(t *testing.T) *answerFixture {
	t.Helper()

	userID := uuid.New()
	questionID := uuid.New()
	chosen := &models.Alternative{ID: uuid.New(), QuestionID: questionID, Body: "7", IsCorrect: false, Ord: 1}
	correct := &models.Alternative{ID: uuid.New(), QuestionID: questionID, Body: "9", IsCorrect: true, Ord: 2}

	answers := &fakeAnswerStore{existing: map[uuid.UUID]map[uuid.UUID]*models.Answer{}}
	questions := &fakeAnswerQuestionStore{
		questions: map[uuid.UUID]*models.Question{
			questionID: {ID: questionID, Statement: "3 squared?", IsActive: true},
		},
		alternatives: map[uuid.UUID]*models.Alternative{
			chosen.ID:  chosen,
			correct.ID: correct,
		},
		correctByQ: map[uuid.UUID]*models.Alternative{questionID: correct},
	}
	users := &fakeUserLookup{users: map[uuid.UUID]*models.User{userID: {ID: userID}}}

	return &answerFixture{
		svc:        NewAnswerService(answers, questions, users),
		answers:    answers,
		userID:     userID,
		questionID: questionID,
		chosen:     chosen,
		correct:    correct,
	}
}

func TestSubmitAnswer(t *testing.T) {
	fx := newAnswerFixture(t)

	resp, err := fx.svc.Submit(context.Background(), fx.questionID, fx.userID, dto.AnswerQuestionRequest{AlternativeID: fx.correct.ID})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !resp.IsCorrect {
		t.Error("IsCorrect = false, want true")
	}
	if resp.CorrectAlternativeID != fx.correct.ID {
		t.Errorf("CorrectAlternativeID = %s, want %s", resp.CorrectAlternativeID, fx.correct.ID)
	}
	if len(fx.answers.created) != 1 {
		t.Fatalf("created %d answers, want 1", len(fx.answers.created))
	}
}

func TestSubmitAnswerIncorrectChoice(t *testing.T) {
	fx := newAnswerFixture(t)

	resp, err := fx.svc.Submit(context.Background(), fx.questionID, fx.userID, dto.AnswerQuestionRequest{AlternativeID: fx.chosen.ID})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if resp.IsCorrect {
		t.Error("IsCorrect = true, want false")
	}
	// Wrong answers still reveal the correct alternative.
	if resp.CorrectAlternativeID != fx.correct.ID {
		t.Errorf("CorrectAlternativeID = %s, want %s", resp.CorrectAlternativeID, fx.correct.ID)
	}
}

func TestSubmitAnswerInactiveQuestion(t *testing.T) {
	fx := newAnswerFixture(t)
	questions := &fakeAnswerQuestionStore{
		questions: map[uuid.UUID]*models.Question{
			fx.questionID: {ID: fx.questionID, IsActive: false},
		},
	}
	svc := NewAnswerService(fx.answers, questions, &fakeUserLookup{users: map[uuid.UUID]*models.User{fx.userID: {ID: fx.userID}}})

	_, err := svc.Submit(context.Background(), fx.questionID, fx.userID, dto.AnswerQuestionRequest{AlternativeID: fx.chosen.ID})
	if !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("err = %v, want business rule violation", err)
	}
}

func TestSubmitAnswerAlternativeMismatch(t *testing.T) {
	fx := newAnswerFixture(t)

	// Alternative exists but belongs to a different question.
	otherQuestion := uuid.New()
	fx.chosen.QuestionID = otherQuestion

	_, err := fx.svc.Submit(context.Background(), fx.questionID, fx.userID, dto.AnswerQuestionRequest{AlternativeID: fx.chosen.ID})
	if !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("err = %v, want business rule violation", err)
	}
	if len(fx.answers.created) != 0 {
		t.Errorf("created %d answers, want 0", len(fx.answers.created))
	}
}

func TestSubmitAnswerDuplicate(t *testing.T) {
	fx := newAnswerFixture(t)
	fx.answers.existing[fx.userID] = map[uuid.UUID]*models.Answer{
		fx.questionID: {ID: uuid.New(), UserID: fx.userID, QuestionID: fx.questionID},
	}

	_, err := fx.svc.Submit(context.Background(), fx.questionID, fx.userID, dto.AnswerQuestionRequest{AlternativeID: fx.chosen.ID})
	if !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("err = %v, want business rule violation", err)
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	fx := newAnswerFixture(t)

	_, err := fx.svc.Submit(context.Background(), uuid.New(), fx.userID, dto.AnswerQuestionRequest{AlternativeID: fx.chosen.ID})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("err = %v, want resource not found", err)
	}
}

func TestGetUserStats(t *testing.T) {
	fx := newAnswerFixture(t)
	fx.answers.total = 8
	fx.answers.correct = 5

	stats, err := fx.svc.GetUserStats(context.Background(), fx.userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalAnswers != 8 || stats.CorrectAnswers != 5 || stats.IncorrectAnswers != 3 {
		t.Errorf("stats = %+v, want 8/5/3", stats)
	}
	if stats.Accuracy != "62.50" {
		t.Errorf("Accuracy = %q, want 62.50", stats.Accuracy)
	}
}

func TestGetUserStatsEmpty(t *testing.T) {
	fx := newAnswerFixture(t)

	stats, err := fx.svc.GetUserStats(context.Background(), fx.userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Accuracy != "0.00" {
		t.Errorf("Accuracy = %q, want 0.00", stats.Accuracy)
	}
}
