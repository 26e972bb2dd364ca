package session

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
)

// Restore brings back the persisted session. An expired credential is
// discarded without a network call; otherwise the identity is refreshed
// from the server and a rejected credential is removed.
func (s *Service) Restore(ctx context.Context) (*user.User, error) {
	saved, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Errorw("failed to load persisted session", "error", err)
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}
	if saved == nil || saved.Token == "" {
		return nil, nil
	}

	if saved.ExpiresAt == nil {
		saved.ExpiresAt = tokenExpiry(saved.Token)
	}
	if saved.IsExpired() {
		s.logger.Infow("persisted session expired", "user_id", saved.User.ID, "expires_at", saved.ExpiresAt)
		if err := s.store.Clear(ctx); err != nil {
			s.logger.Errorw("failed to clear expired session", "error", err)
		}
		return nil, nil
	}

	s.set(saved)

	me, err := s.auth.Me(ctx)
	if err != nil {
		s.logger.Warnw("persisted session rejected", "user_id", saved.User.ID, "error", err)
		s.set(nil)
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			s.logger.Errorw("failed to clear rejected session", "error", clearErr)
		}
		return nil, errors.NewUnauthorizedError(constants.ErrMsgSessionExpired, err.Error())
	}

	refreshed := *saved
	refreshed.User = *me
	s.set(&refreshed)
	if err := s.store.Save(ctx, &refreshed); err != nil {
		s.logger.Errorw("failed to refresh persisted session", "user_id", me.ID, "error", err)
	}

	s.logger.Infow("session restored", "user_id", me.ID)
	u := *me
	return &u, nil
}
