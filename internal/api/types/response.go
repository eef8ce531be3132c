// internal/api/types/response.go
package types

// PaginatedResponse wraps one page of a list endpoint, such as betting
// history, together with the pagination window and the total row count.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}
