package api

import (
	"context"
	"fmt"
	"net/http"

	"helpdesk/internal/domain/dashboard"
)

type DashboardAPI struct {
	client *Client
}

var _ dashboard.Reader = (*DashboardAPI)(nil)

func NewDashboardAPI(client *Client) *DashboardAPI {
	return &DashboardAPI{client: client}
}

func (a *DashboardAPI) Summary(ctx context.Context) (dashboard.Summary, error) {
	var out dashboard.Summary
	if err := a.client.doRequest(ctx, http.MethodGet, "/dashboard/resumo", nil, nil, &out); err != nil {
		return out, fmt.Errorf("dashboard summary: %w", err)
	}
	return out, nil
}
