package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"helpdesk/internal/domain/shared"
	"helpdesk/internal/shared/query"
)

// FilterStyle says how a filter route expects its criteria.
type FilterStyle int

const (
	// FilterQuery sends criteria, page and limit as a GET query string.
	FilterQuery FilterStyle = iota
	// FilterBody sends criteria, page and limit as a POST JSON body.
	FilterBody
)

// Resource is the CRUD surface of one REST collection.
type Resource[T, F, Form any] struct {
	client      *Client
	path        string
	filterPath  string
	filterStyle FilterStyle
}

// NewResource binds a collection path such as "/chamados". Its filter route
// is path + "/filtrar".
func NewResource[T, F, Form any](client *Client, path string, style FilterStyle) *Resource[T, F, Form] {
	return &Resource[T, F, Form]{
		client:      client,
		path:        path,
		filterPath:  path + "/filtrar",
		filterStyle: style,
	}
}

var _ shared.Repository[struct{}, struct{}, struct{}] = (*Resource[struct{}, struct{}, struct{}])(nil)

func (r *Resource[T, F, Form]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

// List fetches one page of the unfiltered collection.
func (r *Resource[T, F, Form]) List(ctx context.Context, page, limit int) (shared.Page[T], error) {
	pf := query.NewPageFilter(page, limit)
	values := url.Values{}
	pf.Apply(values)

	body, err := r.client.send(ctx, http.MethodGet, r.path, values, nil, jsonAccept)
	if err != nil {
		return shared.Page[T]{}, fmt.Errorf("list %s: %w", r.path, err)
	}
	return decodePage[T](body, pf.Page, pf.PageSize)
}

// Filter fetches one page of the records matching criteria. Unset criteria
// never reach the wire.
func (r *Resource[T, F, Form]) Filter(ctx context.Context, criteria F, page, limit int) (shared.Page[T], error) {
	pf := query.NewPageFilter(page, limit)

	var (
		body []byte
		err  error
	)
	switch r.filterStyle {
	case FilterBody:
		payload, cerr := query.Criteria(criteria)
		if cerr != nil {
			return shared.Page[T]{}, cerr
		}
		payload["page"] = pf.Page
		payload["limit"] = pf.PageSize
		body, err = r.client.send(ctx, http.MethodPost, r.filterPath, nil, payload, jsonAccept)
	default:
		values, verr := query.Values(criteria)
		if verr != nil {
			return shared.Page[T]{}, verr
		}
		pf.Apply(values)
		body, err = r.client.send(ctx, http.MethodGet, r.filterPath, values, nil, jsonAccept)
	}
	if err != nil {
		return shared.Page[T]{}, fmt.Errorf("filter %s: %w", r.path, err)
	}
	return decodePage[T](body, pf.Page, pf.PageSize)
}

func (r *Resource[T, F, Form]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	if err := r.client.doRequest(ctx, http.MethodGet, r.itemPath(id), nil, nil, &out); err != nil {
		return out, fmt.Errorf("get %s: %w", r.itemPath(id), err)
	}
	return out, nil
}

func (r *Resource[T, F, Form]) Create(ctx context.Context, form Form) (T, error) {
	var out T
	if err := r.client.doRequest(ctx, http.MethodPost, r.path, nil, form, &out); err != nil {
		return out, fmt.Errorf("create %s: %w", r.path, err)
	}
	return out, nil
}

// Update sends only the changed keys.
func (r *Resource[T, F, Form]) Update(ctx context.Context, id int64, changes map[string]any) (T, error) {
	var out T
	if err := r.client.doRequest(ctx, http.MethodPut, r.itemPath(id), nil, changes, &out); err != nil {
		return out, fmt.Errorf("update %s: %w", r.itemPath(id), err)
	}
	return out, nil
}

func (r *Resource[T, F, Form]) Delete(ctx context.Context, id int64) error {
	if err := r.client.doRequest(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", r.itemPath(id), err)
	}
	return nil
}

// pdf downloads the rendered document of one record.
func (r *Resource[T, F, Form]) pdf(ctx context.Context, id int64) ([]byte, error) {
	path := r.itemPath(id) + "/pdf"
	data, err := r.client.doRaw(ctx, http.MethodGet, path, pdfAccept)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return data, nil
}
