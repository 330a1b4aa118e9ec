package fantasy

import "fmt"

// Pagination metadata. Invariants: TotalPages == ceil(TotalItems/PageSize),
// HasNext iff CurrentPage < TotalPages, HasPrevious iff CurrentPage > 1.
type Pagination struct {
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Paginate slices items into the requested page. Pages beyond the end yield
// an empty item slice with correct totals; page or pageSize below 1 is a
// caller contract violation and is rejected, never clamped.
func Paginate[T any](items []T, page, pageSize int) (Page[T], error) {
	if page < 1 {
		return Page[T]{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return Page[T]{}, fmt.Errorf("page_size must be >= 1, got %d", pageSize)
	}

	totalItems := len(items)
	totalPages := (totalItems + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page[T]{
		Items: items[start:end],
		Pagination: Pagination{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: page,
			PageSize:    pageSize,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}, nil
}
