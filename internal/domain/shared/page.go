package shared

import (
	"fmt"
)

// PageMeta describes where a page sits in a paginated result set.
type PageMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
	LastPage    int   `json:"lastPage"`
}

// Page is the canonical paginated envelope returned by list and filter calls.
type Page[T any] struct {
	Items []T      `json:"data"`
	Meta  PageMeta `json:"meta"`
}

// EmptyPage returns a page with no items whose meta points at page 1 of 1.
func EmptyPage[T any]() Page[T] {
	return Page[T]{
		Items: []T{},
		Meta:  PageMeta{CurrentPage: 1, LastPage: 1},
	}
}

// Validate checks 0 <= currentPage <= lastPage and len(items) <= perPage.
// A perPage of zero means the server did not report one and the size bound is skipped.
// An empty page past the end is valid: the server answers that way when the
// requested page no longer exists, e.g. after a delete.
func (p Page[T]) Validate() error {
	m := p.Meta
	if m.CurrentPage < 0 {
		return fmt.Errorf("current page %d is negative", m.CurrentPage)
	}
	if m.CurrentPage > m.LastPage && !p.PastEnd() {
		return fmt.Errorf("current page %d exceeds last page %d", m.CurrentPage, m.LastPage)
	}
	if m.PerPage > 0 && len(p.Items) > m.PerPage {
		return fmt.Errorf("page holds %d items, more than per page %d", len(p.Items), m.PerPage)
	}
	return nil
}

// PastEnd reports whether the page is the empty answer to a page beyond the
// last one.
func (p Page[T]) PastEnd() bool {
	return len(p.Items) == 0 && p.Meta.CurrentPage > p.Meta.LastPage
}

// IsEmpty reports whether the page carries no items.
func (p Page[T]) IsEmpty() bool {
	return len(p.Items) == 0
}
