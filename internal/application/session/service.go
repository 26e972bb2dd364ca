// Package session owns the signed-in identity of the console. It is the only
// writer of the bearer credential; the REST interceptor and the realtime
// channel read it through Token.
package session

import (
	"context"
	"fmt"
	"sync"

	"helpdesk/internal/domain/permission"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type Service struct {
	auth     user.Authenticator
	store    user.SessionRepository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface

	mu       sync.RWMutex
	current  *user.Session
	teardown []func()
}

func NewService(
	auth user.Authenticator,
	store user.SessionRepository,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *Service {
	return &Service{
		auth:     auth,
		store:    store,
		enforcer: enforcer,
		logger:   logger,
	}
}

// Token returns the bearer credential of the current session, or "".
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Current returns a copy of the signed-in identity, or nil.
func (s *Service) Current() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := s.current.User
	return &u
}

func (s *Service) IsAuthenticated() bool {
	return s.Current() != nil
}

// OnLogout registers a hook run after the session is torn down, e.g. to drop
// cached lists or close the realtime channel.
func (s *Service) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardown = append(s.teardown, fn)
}

// Authorize checks the signed-in role against the permission policies. It
// fails with an unauthorized error when nobody is signed in and with a
// forbidden error when the policy denies the action.
func (s *Service) Authorize(resource pvo.Resource, action pvo.Action) error {
	current := s.Current()
	if current == nil {
		return errors.NewUnauthorizedError(constants.ErrMsgNotSignedIn)
	}
	if s.enforcer == nil {
		return nil
	}

	allowed, err := s.enforcer.Enforce(string(current.Role), resource, action)
	if err != nil {
		s.logger.Errorw("failed to evaluate permission", "role", current.Role, "resource", resource, "action", action, "error", err)
		return fmt.Errorf("failed to evaluate permission: %w", err)
	}
	if !allowed {
		s.logger.Warnw("action denied", "user_id", current.ID, "role", current.Role, "resource", resource, "action", action)
		return errors.NewForbiddenError(constants.ErrMsgForbidden, fmt.Sprintf("%s:%s", resource, action))
	}
	return nil
}

// Logout drops the in-memory identity and the persisted credential, then runs
// the registered teardown hooks.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	var userID int64
	if s.current != nil {
		userID = s.current.User.ID
	}
	s.current = nil
	hooks := append([]func(){}, s.teardown...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Errorw("failed to clear persisted session", "error", err)
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}

	s.logger.Infow("signed out", "user_id", userID)
	return nil
}

func (s *Service) set(session *user.Session) {
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
}
