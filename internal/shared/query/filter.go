package query

import (
	"strconv"

	"helpdesk/internal/shared/utils"
)

type PageFilter struct {
	Page     int
	PageSize int
}

// NewPageFilter returns a normalized page filter.
func NewPageFilter(page, pageSize int) PageFilter {
	p := utils.ValidatePagination(page, pageSize)
	return PageFilter{Page: p.Page, PageSize: p.PageSize}
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Apply sets the page and limit query keys used by every list route.
func (f PageFilter) Apply(values map[string][]string) {
	values["page"] = []string{strconv.Itoa(f.Page)}
	values["limit"] = []string{strconv.Itoa(f.PageSize)}
}
