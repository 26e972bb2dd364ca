package user

import "context"

// Credentials are what the login form submits.
type Credentials struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

// AuthResult is a successful login: the bearer token and who it belongs to.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticator talks to the identity routes of the API.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Me(ctx context.Context) (*User, error)
}
