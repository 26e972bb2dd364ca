// Package api is the typed client for the helpdesk REST server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// Client performs JSON requests against the API base URL. Every request goes
// through the bearer interceptor installed on its HTTP transport.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialSource
	logger      logger.Interface
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its transport is wrapped by the
// bearer interceptor.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		if d > 0 {
			client.httpClient.Timeout = d
		}
	}
}

// WithCredentials sets where the bearer token is read from on each request.
func WithCredentials(src CredentialSource) Option {
	return func(client *Client) {
		client.credentials = src
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log logger.Interface) Option {
	return func(client *Client) {
		client.logger = log
	}
}

// NewClient creates a new API client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c.httpClient
	wrapped.Transport = &bearerTransport{base: base, source: c.credentials}
	c.httpClient = &wrapped

	return c
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

const (
	jsonAccept = constants.ContentTypeJSON
	pdfAccept  = constants.ContentTypePDF
)

// errorResponse is the body the server sends with a non-2xx status.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  []errors.FieldError `json:"errors"`
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doRequest performs an HTTP request and decodes the JSON response into result.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	respBody, err := c.send(ctx, method, path, query, body, constants.ContentTypeJSON)
	if err != nil {
		return err
	}

	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// doRaw performs an HTTP request and returns the response body untouched.
func (c *Client) doRaw(ctx context.Context, method, path string, accept string) ([]byte, error) {
	return c.send(ctx, method, path, nil, nil, accept)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, accept string) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	req.Header.Set(constants.HeaderAccept, accept)
	req.Header.Set(headerRequestID, uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debugw("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(headerRequestID),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// decodeError turns an error response into an AppError. Bodies that are not
// JSON keep the generic message.
func decodeError(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return errors.FromStatus(status, "", nil)
	}

	message := er.Message
	if message == "" && len(er.Errors) > 0 && er.Errors[0].Field == "" {
		message = er.Errors[0].Message
	}
	return errors.FromStatus(status, message, er.Errors)
}
