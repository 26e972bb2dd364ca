package api

import (
	"encoding/json"
	"fmt"

	"helpdesk/internal/domain/shared"
	"helpdesk/internal/shared/utils"
)

// rawMeta accepts both pagination spellings the server uses: snake_case on
// plain lists and on some filter routes, camelCase on the others.
type rawMeta struct {
	Total            *int64 `json:"total"`
	CurrentPage      *int   `json:"currentPage"`
	CurrentPageSnake *int   `json:"current_page"`
	PerPage          *int   `json:"perPage"`
	PerPageSnake     *int   `json:"per_page"`
	LastPage         *int   `json:"lastPage"`
	LastPageSnake    *int   `json:"last_page"`
}

type rawPage[T any] struct {
	Data []T     `json:"data"`
	Meta rawMeta `json:"meta"`
}

func firstInt(values ...*int) (int, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

// normalize builds the canonical meta. Missing fields are derived: perPage
// from the requested limit, lastPage from total and perPage.
func (m rawMeta) normalize(requestedPage, requestedLimit, itemCount int) shared.PageMeta {
	var meta shared.PageMeta

	if m.Total != nil {
		meta.Total = *m.Total
	} else {
		meta.Total = int64(itemCount)
	}

	if v, ok := firstInt(m.PerPage, m.PerPageSnake); ok {
		meta.PerPage = v
	} else {
		meta.PerPage = requestedLimit
	}

	if v, ok := firstInt(m.CurrentPage, m.CurrentPageSnake); ok {
		meta.CurrentPage = v
	} else {
		meta.CurrentPage = requestedPage
	}

	if v, ok := firstInt(m.LastPage, m.LastPageSnake); ok {
		meta.LastPage = v
	} else {
		meta.LastPage = utils.TotalPages(meta.Total, meta.PerPage)
	}

	// An empty result reports lastPage 0 while the client asked for page 1.
	if meta.LastPage < meta.CurrentPage && meta.Total == 0 {
		meta.LastPage = meta.CurrentPage
	}

	return meta
}

// decodePage decodes a list envelope into the canonical page and checks the
// page invariants.
func decodePage[T any](body []byte, requestedPage, requestedLimit int) (shared.Page[T], error) {
	var raw rawPage[T]
	if err := json.Unmarshal(body, &raw); err != nil {
		return shared.Page[T]{}, fmt.Errorf("unmarshal page: %w", err)
	}

	items := raw.Data
	if items == nil {
		items = []T{}
	}

	page := shared.Page[T]{
		Items: items,
		Meta:  raw.Meta.normalize(requestedPage, requestedLimit, len(items)),
	}
	if err := page.Validate(); err != nil {
		return shared.Page[T]{}, fmt.Errorf("invalid page: %w", err)
	}
	return page, nil
}
