package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"helpdesk/internal/domain/mail"
	"helpdesk/internal/domain/shared"
	"helpdesk/internal/shared/query"
)

// MailAPI sends email through the server and reads its dispatch log.
type MailAPI struct {
	client *Client
}

var (
	_ mail.Sender        = (*MailAPI)(nil)
	_ mail.LogRepository = (*MailAPI)(nil)
)

func NewMailAPI(client *Client) *MailAPI {
	return &MailAPI{client: client}
}

func (a *MailAPI) Send(ctx context.Context, msg mail.Message) (mail.Result, error) {
	var out mail.Result
	if err := a.client.doRequest(ctx, http.MethodPost, "/emails/enviar", nil, msg, &out); err != nil {
		return out, fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return out, nil
}

// SendBatch posts one payload per recipient in a single request.
func (a *MailAPI) SendBatch(ctx context.Context, batch mail.Batch) ([]mail.Result, error) {
	var out []mail.Result
	if err := a.client.doRequest(ctx, http.MethodPost, "/emails/enviar-lote", nil, batch.Split(), &out); err != nil {
		return nil, fmt.Errorf("send email batch: %w", err)
	}
	return out, nil
}

// List pages through the dispatch log. The route only honours page.
func (a *MailAPI) List(ctx context.Context, page, limit int) (shared.Page[mail.Log], error) {
	pf := query.NewPageFilter(page, limit)
	values := url.Values{"page": {strconv.Itoa(pf.Page)}}

	body, err := a.client.send(ctx, http.MethodGet, "/emails/logs", values, nil, jsonAccept)
	if err != nil {
		return shared.Page[mail.Log]{}, fmt.Errorf("list email logs: %w", err)
	}
	return decodePage[mail.Log](body, pf.Page, pf.PageSize)
}

func (a *MailAPI) Get(ctx context.Context, logID int64) (mail.Log, error) {
	var out mail.Log
	path := fmt.Sprintf("/emails/logs/%d", logID)
	if err := a.client.doRequest(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return out, fmt.Errorf("get email log %d: %w", logID, err)
	}
	return out, nil
}

func (a *MailAPI) Delete(ctx context.Context, logID int64) error {
	path := fmt.Sprintf("/emails/logs/%d", logID)
	if err := a.client.doRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete email log %d: %w", logID, err)
	}
	return nil
}
