package dto

// SuccessResponse is the body returned by delete and other message-only endpoints.
type SuccessResponse struct {
	Message string `json:"message"`
}
