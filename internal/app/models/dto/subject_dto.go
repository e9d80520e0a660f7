package dto

import "time"

// CreateSubjectRequest represents subject creation data. Updates reuse
// the same shape since a subject only carries a name.
type CreateSubjectRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	ExamID *int64 `json:"examId,omitempty" binding:"omitempty,gt=0"`
}

// SubjectResponse represents basic subject information
type SubjectResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ExamID      *int64    `json:"examId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	TopicsCount int       `json:"topicsCount"`
}

// TopicSummaryResponse is the condensed topic shape nested under a subject
type TopicSummaryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubjectWithTopicsResponse nests a subject with its topic summaries
type SubjectWithTopicsResponse struct {
	ID     int64                  `json:"id"`
	Name   string                 `json:"name"`
	Topics []TopicSummaryResponse `json:"topics"`
}

// SubjectsWithTopicsResponse wraps the read-optimized subjects projection
// for one exam
type SubjectsWithTopicsResponse struct {
	ExamSlug string                      `json:"examSlug"`
	Subjects []SubjectWithTopicsResponse `json:"subjects"`
}
