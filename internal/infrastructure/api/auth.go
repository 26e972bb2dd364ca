package api

import (
	"context"
	"fmt"
	"net/http"

	"helpdesk/internal/domain/user"
)

type meResponse struct {
	User user.User `json:"user"`
}

// AuthAPI wraps the login and identity routes.
type AuthAPI struct {
	client *Client
}

var _ user.Authenticator = (*AuthAPI)(nil)

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login exchanges credentials for a bearer token.
func (a *AuthAPI) Login(ctx context.Context, creds user.Credentials) (*user.AuthResult, error) {
	var resp user.AuthResult
	if err := a.client.doRequest(ctx, http.MethodPost, "/login", nil, creds, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp, nil
}

// Me returns the identity the current credential belongs to.
func (a *AuthAPI) Me(ctx context.Context) (*user.User, error) {
	var resp meResponse
	if err := a.client.doRequest(ctx, http.MethodGet, "/me", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &resp.User, nil
}
