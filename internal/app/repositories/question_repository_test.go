package repositories

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/questionmaster/api/internal/app/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildQuestionListQueryDefaults(t *testing.T) {
	sql, args, err := buildQuestionListQuery(QuestionFilter{Limit: 20}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	for _, fragment := range []string{
		"COUNT(*) OVER() AS total",
		"FROM questions q",
		"q.is_active = $1",
		"ORDER BY q.created_at DESC",
		"LIMIT 20",
		"OFFSET 0",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("query missing %q:\n%s", fragment, sql)
		}
	}
	if len(args) != 1 || args[0] != true {
		t.Fatalf("expected single is_active arg, got %v", args)
	}
}

func TestBuildQuestionListQueryCatalogFilters(t *testing.T) {
	qtype := models.QuestionTypeMultipleChoice
	filter := QuestionFilter{
		ExamID:       int64Ptr(5),
		SubjectIDs:   []int64{1, 2},
		Years:        []int16{2023, 2024},
		QuestionType: &qtype,
		TopicIDs:     []int64{10},
		Offset:       40,
		Limit:        20,
	}

	sql, args, err := buildQuestionListQuery(filter).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	for _, fragment := range []string{
		"q.exam_id =",
		"q.subject_id IN",
		"q.year IN",
		"q.qtype =",
		"EXISTS (SELECT 1 FROM question_topics qt WHERE qt.question_id = q.id AND qt.topic_id = ANY(",
		"LIMIT 20",
		"OFFSET 40",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("query missing %q:\n%s", fragment, sql)
		}
	}

	// is_active, exam, 2 subjects, 2 years, qtype, topic slice
	if len(args) != 8 {
		t.Fatalf("expected 8 args, got %d: %v", len(args), args)
	}
}

func TestBuildQuestionListQueryAnswerStatus(t *testing.T) {
	userID := uuid.New()

	cases := []struct {
		status   models.AnswerStatus
		fragment string
	}{
		{models.AnswerStatusAnswered, "EXISTS (SELECT a.is_correct FROM answers a"},
		{models.AnswerStatusUnanswered, "NOT EXISTS (SELECT a.is_correct FROM answers a"},
		{models.AnswerStatusCorrect, "COALESCE((SELECT a.is_correct FROM answers a"},
		{models.AnswerStatusIncorrect, "NOT COALESCE((SELECT a.is_correct FROM answers a"},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			status := tc.status
			filter := QuestionFilter{UserID: &userID, AnswerStatus: &status, Limit: 20}

			sql, args, err := buildQuestionListQuery(filter).ToSql()
			if err != nil {
				t.Fatalf("ToSql: %v", err)
			}
			if !strings.Contains(sql, tc.fragment) {
				t.Errorf("query missing %q:\n%s", tc.fragment, sql)
			}
			if !strings.Contains(sql, "ORDER BY a.answered_at DESC LIMIT 1") {
				t.Errorf("latest-answer subquery should keep only the most recent answer:\n%s", sql)
			}
			if len(args) != 2 || args[1] != userID {
				t.Fatalf("expected user id as second arg, got %v", args)
			}
		})
	}
}

func TestBuildQuestionListQueryIgnoresStatusWithoutUser(t *testing.T) {
	status := models.AnswerStatusCorrect
	sql, _, err := buildQuestionListQuery(QuestionFilter{AnswerStatus: &status, Limit: 20}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if strings.Contains(sql, "answers a") {
		t.Fatalf("answer status must be ignored without a user:\n%s", sql)
	}
}
