package api

import (
	"context"
	"fmt"
	"net/http"

	"helpdesk/internal/domain/ticket"
)

type TicketsAPI struct {
	*Resource[ticket.Ticket, ticket.Filter, ticket.Form]
}

var _ ticket.TicketRepository = (*TicketsAPI)(nil)

func NewTicketsAPI(client *Client) *TicketsAPI {
	return &TicketsAPI{
		Resource: NewResource[ticket.Ticket, ticket.Filter, ticket.Form](client, "/chamados", FilterBody),
	}
}

// Resolve marks the ticket resolved.
func (a *TicketsAPI) Resolve(ctx context.Context, ticketID int64) (ticket.Ticket, error) {
	var out ticket.Ticket
	path := fmt.Sprintf("/chamados/%d/resolvido", ticketID)
	if err := a.client.doRequest(ctx, http.MethodPut, path, nil, nil, &out); err != nil {
		return out, fmt.Errorf("resolve ticket %d: %w", ticketID, err)
	}
	return out, nil
}

type CommentsAPI struct {
	client *Client
}

var _ ticket.CommentRepository = (*CommentsAPI)(nil)

func NewCommentsAPI(client *Client) *CommentsAPI {
	return &CommentsAPI{client: client}
}

// ListByTicket returns the whole thread of a ticket, oldest first.
func (a *CommentsAPI) ListByTicket(ctx context.Context, ticketID int64) ([]ticket.Comment, error) {
	var out []ticket.Comment
	path := fmt.Sprintf("/chamados/%d/comentarios", ticketID)
	if err := a.client.doRequest(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list comments of ticket %d: %w", ticketID, err)
	}
	if out == nil {
		out = []ticket.Comment{}
	}
	return out, nil
}

func (a *CommentsAPI) Create(ctx context.Context, ticketID int64, form ticket.CommentForm) (ticket.Comment, error) {
	var out ticket.Comment
	path := fmt.Sprintf("/chamados/%d/comentarios", ticketID)
	if err := a.client.doRequest(ctx, http.MethodPost, path, nil, form, &out); err != nil {
		return out, fmt.Errorf("comment on ticket %d: %w", ticketID, err)
	}
	return out, nil
}

func (a *CommentsAPI) Update(ctx context.Context, commentID int64, form ticket.CommentForm) (ticket.Comment, error) {
	var out ticket.Comment
	path := fmt.Sprintf("/comentarios-chamados/%d", commentID)
	if err := a.client.doRequest(ctx, http.MethodPut, path, nil, form, &out); err != nil {
		return out, fmt.Errorf("update comment %d: %w", commentID, err)
	}
	return out, nil
}

func (a *CommentsAPI) Delete(ctx context.Context, commentID int64) error {
	path := fmt.Sprintf("/comentarios-chamados/%d", commentID)
	if err := a.client.doRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return nil
}

type CategoriesAPI struct {
	client *Client
}

var _ ticket.CategoryRepository = (*CategoriesAPI)(nil)

func NewCategoriesAPI(client *Client) *CategoriesAPI {
	return &CategoriesAPI{client: client}
}

// ListAll returns every category; the route is not paginated.
func (a *CategoriesAPI) ListAll(ctx context.Context) ([]ticket.Category, error) {
	var out []ticket.Category
	if err := a.client.doRequest(ctx, http.MethodGet, "/categorias", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (a *CategoriesAPI) Create(ctx context.Context, form ticket.CategoryForm) (ticket.Category, error) {
	var out ticket.Category
	if err := a.client.doRequest(ctx, http.MethodPost, "/categorias", nil, form, &out); err != nil {
		return out, fmt.Errorf("create category: %w", err)
	}
	return out, nil
}

func (a *CategoriesAPI) Update(ctx context.Context, categoryID int64, form ticket.CategoryForm) (ticket.Category, error) {
	var out ticket.Category
	path := fmt.Sprintf("/categorias/%d", categoryID)
	if err := a.client.doRequest(ctx, http.MethodPut, path, nil, form, &out); err != nil {
		return out, fmt.Errorf("update category %d: %w", categoryID, err)
	}
	return out, nil
}

func (a *CategoriesAPI) Delete(ctx context.Context, categoryID int64) error {
	path := fmt.Sprintf("/categorias/%d", categoryID)
	if err := a.client.doRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete category %d: %w", categoryID, err)
	}
	return nil
}
