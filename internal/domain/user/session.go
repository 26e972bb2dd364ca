package user

import (
	"context"
	"time"

	"helpdesk/internal/domain/shared"
)

// Session is the signed-in credential together with the identity it belongs to.
type Session struct {
	Token     string
	User      User
	ExpiresAt *time.Time
	CreatedAt time.Time
}

func (s *Session) IsExpired() bool {
	return shared.IsExpired(s.ExpiresAt)
}

// SessionRepository persists at most one session across process restarts.
type SessionRepository interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}
