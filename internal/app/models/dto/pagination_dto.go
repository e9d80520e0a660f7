package dto

// PaginationInfo carries paging metadata for list responses.
// Page indexes are 0-based.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"0"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalItems  int64 `json:"totalItems" example:"97"`
}
