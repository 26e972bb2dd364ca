// Package listing drives the paginated list pages. A Controller owns the
// plain page of an entity, an optional filtered page and the pager state;
// the CLI and TUI only read its View.
package listing

import (
	"context"
	"fmt"
	"sync"

	"helpdesk/internal/domain/shared"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/logger"
)

// Source is the remote side of a list page.
type Source[T, F any] interface {
	shared.Lister[T]
	shared.Filterer[T, F]
}

// View is what a list page renders.
type View[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
	Filtered   bool  `json:"filtered"`
	Loading    bool  `json:"-"`
}

type Controller[T, F any] struct {
	source   Source[T, F]
	pageSize int
	logger   logger.Interface

	mu         sync.Mutex
	page       int
	totalPages int
	plain      shared.Page[T]
	filtered   *shared.Page[T]
	criteria   *F
	loading    bool
	seq        uint64
}

func NewController[T, F any](source Source[T, F], pageSize int, logger logger.Interface) *Controller[T, F] {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	return &Controller[T, F]{
		source:     source,
		pageSize:   pageSize,
		logger:     logger,
		page:       1,
		totalPages: 1,
		plain:      shared.EmptyPage[T](),
	}
}

// begin hands out the staleness token of a new fetch.
func (c *Controller[T, F]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.loading = true
	return c.seq
}

// finish reports whether token still belongs to the latest fetch and clears
// the loading flag when it does. Caller holds mu.
func (c *Controller[T, F]) finish(token uint64) bool {
	if token != c.seq {
		return false
	}
	c.loading = false
	return true
}

// fetchClamped fetches page and falls back to the last page when the server
// reports that page no longer exists.
func fetchClamped[T any](ctx context.Context, page int, fetch func(ctx context.Context, page int) (shared.Page[T], error)) (shared.Page[T], error) {
	result, err := fetch(ctx, page)
	if err != nil {
		return result, err
	}
	if result.PastEnd() && result.Meta.LastPage >= 1 {
		if result, err = fetch(ctx, result.Meta.LastPage); err != nil {
			return result, err
		}
	}
	return result, result.Validate()
}

// Load fetches one page of the unfiltered set. On failure the previous state
// is kept and the error is returned.
func (c *Controller[T, F]) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	token := c.begin()

	result, err := fetchClamped(ctx, page, func(ctx context.Context, page int) (shared.Page[T], error) {
		return c.source.List(ctx, page, c.pageSize)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finish(token) {
		c.logger.Debugw("discarding stale list response", "page", page)
		return nil
	}
	if err != nil {
		c.logger.Errorw("failed to load page", "page", page, "error", err)
		return fmt.Errorf("failed to load page %d: %w", page, err)
	}

	c.plain = result
	c.page = result.Meta.CurrentPage
	c.totalPages = result.Meta.LastPage
	c.logger.Debugw("page loaded", "page", c.page, "total_pages", c.totalPages, "items", len(result.Items))
	return nil
}

// ApplyFilter fetches the first page of the records matching criteria and
// makes it the displayed set.
func (c *Controller[T, F]) ApplyFilter(ctx context.Context, criteria F) error {
	return c.filter(ctx, criteria, 1)
}

// ApplyFilterAt is ApplyFilter landing directly on page.
func (c *Controller[T, F]) ApplyFilterAt(ctx context.Context, criteria F, page int) error {
	return c.filter(ctx, criteria, page)
}

func (c *Controller[T, F]) filter(ctx context.Context, criteria F, page int) error {
	if page < 1 {
		page = 1
	}
	token := c.begin()

	result, err := fetchClamped(ctx, page, func(ctx context.Context, page int) (shared.Page[T], error) {
		return c.source.Filter(ctx, criteria, page, c.pageSize)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finish(token) {
		c.logger.Debugw("discarding stale filter response", "page", page)
		return nil
	}
	if err != nil {
		c.logger.Errorw("failed to filter", "page", page, "error", err)
		return fmt.Errorf("failed to filter page %d: %w", page, err)
	}

	c.criteria = &criteria
	c.filtered = &result
	c.page = result.Meta.CurrentPage
	c.totalPages = result.Meta.LastPage
	c.logger.Debugw("filter applied", "page", c.page, "total_pages", c.totalPages, "items", len(result.Items))
	return nil
}

// GoTo moves the pager. With an active filter the filter is re-issued for
// the requested page; otherwise the plain set is loaded.
func (c *Controller[T, F]) GoTo(ctx context.Context, page int) error {
	c.mu.Lock()
	criteria := c.criteria
	c.mu.Unlock()

	if criteria != nil {
		return c.filter(ctx, *criteria, page)
	}
	return c.Load(ctx, page)
}

// Reload re-fetches the page currently shown.
func (c *Controller[T, F]) Reload(ctx context.Context) error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()
	return c.GoTo(ctx, page)
}

// Clear drops the filter and empties the list: no items, page 1 of 1.
// Responses of fetches started before Clear are discarded.
func (c *Controller[T, F]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.loading = false
	c.criteria = nil
	c.filtered = nil
	c.plain = shared.EmptyPage[T]()
	c.page = 1
	c.totalPages = 1
}

// Displayed returns the filtered set when one is present and non-empty,
// the plain set otherwise.
func (c *Controller[T, F]) Displayed() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	src := c.plain
	filtered := false
	if c.filtered != nil && !c.filtered.IsEmpty() {
		src = *c.filtered
		filtered = true
	}

	items := make([]T, len(src.Items))
	copy(items, src.Items)

	return View[T]{
		Items:      items,
		Page:       c.page,
		TotalPages: c.totalPages,
		Total:      src.Meta.Total,
		Filtered:   filtered,
		Loading:    c.loading,
	}
}

// Criteria returns the active filter, if any.
func (c *Controller[T, F]) Criteria() (F, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero F
	if c.criteria == nil {
		return zero, false
	}
	return *c.criteria, true
}

func (c *Controller[T, F]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller[T, F]) PageSize() int {
	return c.pageSize
}
