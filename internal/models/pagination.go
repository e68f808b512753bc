package models

// ListOptions carries the pagination and single-field sort parameters
// shared by category and product listings.
type ListOptions struct {
	PageNumber int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type PagedResponse struct {
	Content       any   `json:"content"`
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	LastPage      bool  `json:"last_page"`
}

func NewPagedResponse(content any, opts ListOptions, total int64) *PagedResponse {
	totalPages := int((total + int64(opts.PageSize) - 1) / int64(opts.PageSize))

	return &PagedResponse{
		Content:       content,
		PageNumber:    opts.PageNumber,
		PageSize:      opts.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		LastPage:      opts.PageNumber >= totalPages,
	}
}
