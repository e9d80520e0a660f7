package apperrors

import "errors"

// Error kinds. Every service failure wraps exactly one of these so the
// request boundary can map it to a status code without inspecting messages.
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Domain rule errors
	ErrBusinessRule = errors.New("business rule violation")

	// Request shape errors
	ErrValidationFailed = errors.New("validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Catalog errors
var (
	ErrExamNotFound         = errors.New("exam not found")
	ErrExamSlugExists       = errors.New("exam with this slug already exists")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectAlreadyExists = errors.New("subject with this name already exists")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrTopicAlreadyExists   = errors.New("topic with this name already exists in this subject")
)

// Question and answer errors
var (
	ErrQuestionNotFound     = errors.New("question not found")
	ErrQuestionInactive     = errors.New("question is not active")
	ErrAlternativeNotFound  = errors.New("alternative not found")
	ErrAlternativeMismatch  = errors.New("alternative does not belong to this question")
	ErrQuestionAnswered     = errors.New("question has already been answered by this user")
	ErrNoCorrectAlternative = errors.New("no correct alternative found for this question")
)

// Subscription errors
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// CustomError carries a kind plus request-specific context.
type CustomError struct {
	Err     error
	Message string
	Fields  map[string]string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the underlying kind to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithFields attaches a field->message map, used by validation failures.
func (e *CustomError) WithFields(fields map[string]string) *CustomError {
	e.Fields = fields
	return e
}

// NewResourceNotFoundError creates a NotFound error with a message.
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewBusinessError creates a business rule violation with a message.
func NewBusinessError(message string) error {
	return &CustomError{Err: ErrBusinessRule, Message: message}
}

// NewValidationError creates a validation failure with a message.
func NewValidationError(message string) *CustomError {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewForbiddenError creates a permission denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}
