package response

// Paginated is the envelope every collection endpoint returns.
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPaginated is a helper to quickly create an envelope.
func NewPaginated[T any](results []T, count int, next, previous *string) Paginated[T] {
	// Handle empty slice to avoid JSON outputting null
	if results == nil {
		results = make([]T, 0)
	}

	return Paginated[T]{
		Count:    count,
		Next:     next,
		Previous: previous,
		Results:  results,
	}
}

// HasNext reports whether the server advertised a following page.
func (p Paginated[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// HasPrevious reports whether the server advertised a preceding page.
func (p Paginated[T]) HasPrevious() bool {
	return p.Previous != nil && *p.Previous != ""
}

// TotalPages computes the page count for a given page size.
func (p Paginated[T]) TotalPages(pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (p.Count + pageSize - 1) / pageSize
}
