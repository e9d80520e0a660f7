package dto

// UpdateDisplayNameRequest represents a display name change for the current user
type UpdateDisplayNameRequest struct {
	DisplayName string `json:"displayName" binding:"required,max=100"`
}

// UpdateRoleRequest represents an admin changing another user's role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=USER ADMIN"`
}
