package session

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
)

// Field names the login form reports errors on.
const (
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldRecaptchaToken = "recaptchaToken"
)

// Login signs in, keeps the identity in memory and persists the credential.
// Every failure is a validation AppError whose Fields are scoped to the
// login form inputs.
func (s *Service) Login(ctx context.Context, creds user.Credentials) (*user.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)

	var missing []errors.FieldError
	if creds.Email == "" {
		missing = append(missing, errors.FieldError{Field: FieldEmail, Message: constants.ErrMsgEmailRequired})
	}
	if creds.Password == "" {
		missing = append(missing, errors.FieldError{Field: FieldPassword, Message: constants.ErrMsgPasswordRequired})
	}
	if len(missing) > 0 {
		return nil, loginError(constants.ErrMsgLoginFailed, missing)
	}

	s.logger.Infow("signing in", "email", creds.Email)

	result, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.logger.Warnw("login rejected", "email", creds.Email, "error", err)
		return nil, mapLoginError(err)
	}

	session := &user.Session{
		Token:     result.Token,
		User:      result.User,
		ExpiresAt: tokenExpiry(result.Token),
		CreatedAt: biztime.NowUTC(),
	}
	s.set(session)

	if err := s.store.Save(ctx, session); err != nil {
		// The in-memory session stays usable for this process.
		s.logger.Errorw("failed to persist session", "user_id", result.User.ID, "error", err)
	}

	s.logger.Infow("signed in", "user_id", result.User.ID, "role", result.User.Role)
	u := result.User
	return &u, nil
}

// mapLoginError attaches server-reported field errors to the login inputs.
// Errors on unknown fields, and responses without field errors, put the
// message on both email and password.
func mapLoginError(err error) error {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		return loginError(constants.ErrMsgLoginFailed, bothCredentialFields(constants.ErrMsgLoginFailed))
	}

	message := appErr.Message
	if message == "" || message == errors.GenericMessage {
		message = constants.ErrMsgLoginFailed
	}

	if len(appErr.Fields) == 0 {
		return loginError(message, bothCredentialFields(message))
	}

	var fields []errors.FieldError
	for _, f := range appErr.Fields {
		switch f.Field {
		case FieldEmail, FieldPassword, FieldRecaptchaToken:
			fields = append(fields, f)
		default:
			fields = append(fields, bothCredentialFields(f.Message)...)
		}
	}
	return loginError(message, fields)
}

func bothCredentialFields(message string) []errors.FieldError {
	return []errors.FieldError{
		{Field: FieldEmail, Message: message},
		{Field: FieldPassword, Message: message},
	}
}

func loginError(message string, fields []errors.FieldError) *errors.AppError {
	appErr := errors.NewValidationError(message)
	appErr.Fields = fields
	return appErr
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server stays the authority. Opaque tokens have no known expiry.
func tokenExpiry(token string) *time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time.UTC()
	return &exp
}
