package dto

import "time"

// CreateTopicRequest represents topic creation data. Updates reuse the
// same shape.
type CreateTopicRequest struct {
	SubjectID int64  `json:"subjectId" binding:"required,gt=0"`
	Name      string `json:"name" binding:"required,max=100"`
}

// TopicResponse represents topic information with its owning subject
type TopicResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SubjectID   int64     `json:"subjectId"`
	SubjectName string    `json:"subjectName"`
	CreatedAt   time.Time `json:"createdAt"`
}
