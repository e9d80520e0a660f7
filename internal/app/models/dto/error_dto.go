package dto

import "time"

// ErrorResponse is the standard error body returned by the API boundary.
type ErrorResponse struct {
	Message   string    `json:"message" example:"Exam not found with id: 42"`
	Timestamp time.Time `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
	Status    int       `json:"status" example:"404"`
}

// ValidationErrorResponse extends ErrorResponse with a field to message map.
type ValidationErrorResponse struct {
	Message   string            `json:"message" example:"Validation failed"`
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status" example:"400"`
	Errors    map[string]string `json:"errors"`
}

// NewErrorResponse creates an error body for the given status code.
func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
		Status:    status,
	}
}

// NewValidationErrorResponse creates a validation error body with per-field messages.
func NewValidationErrorResponse(message string, fields map[string]string) ValidationErrorResponse {
	return ValidationErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
		Status:    400,
		Errors:    fields,
	}
}
