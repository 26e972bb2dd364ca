package api

import (
	"net/http"

	"github.com/google/uuid"

	"helpdesk/internal/shared/constants"
)

const headerRequestID = "X-Request-ID"

// CredentialSource yields the bearer token for the next request. An empty
// token means the request goes out unauthenticated.
type CredentialSource interface {
	Token() string
}

// TokenFunc adapts a function to CredentialSource.
type TokenFunc func() string

func (f TokenFunc) Token() string {
	return f()
}

// StaticToken is a CredentialSource that always returns the same token.
type StaticToken string

func (s StaticToken) Token() string {
	return string(s)
}

// bearerTransport attaches the current credential and a request ID to every
// outgoing request.
type bearerTransport struct {
	base   http.RoundTripper
	source CredentialSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if r.Header.Get(headerRequestID) == "" {
		r.Header.Set(headerRequestID, uuid.NewString())
	}
	if t.source != nil {
		if token := t.source.Token(); token != "" {
			r.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
		}
	}

	return t.base.RoundTrip(r)
}
