package entity

// Page is one server-resolved page of results.
//
// Invariants: len(Content) <= PageSize and Last == (PageNo == TotalPages-1).
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNo        int   `json:"pageNo"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// NewPage derives the pagination bookkeeping from a page of content and the
// total element count. An empty result still reports one (empty) page so the
// Last invariant holds.
func NewPage[T any](content []T, pageNo, pageSize int, total int64) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}
	return Page[T]{
		Content:       content,
		PageNo:        pageNo,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          pageNo == totalPages-1,
	}
}
