package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/migration"
	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.SessionConfig{DatabasePath: ":memory:"}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.Up(context.Background(), db, logger.NewNop()))
	return db
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("empty store loads nil", func(t *testing.T) {
		s, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("save then load round trips identity", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		err := repo.Save(ctx, &user.Session{
			Token:     "tok-1",
			User:      user.User{ID: 4, FullName: "Caio", Email: "caio@example.com", Role: vo.RoleTechnician},
			ExpiresAt: &exp,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)

		s, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "tok-1", s.Token)
		assert.Equal(t, int64(4), s.User.ID)
		assert.Equal(t, vo.RoleTechnician, s.User.Role)
		require.NotNil(t, s.ExpiresAt)
		assert.True(t, exp.Equal(*s.ExpiresAt))
	})

	t.Run("save replaces previous session", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &user.Session{Token: "tok-2", User: user.User{ID: 5}, CreatedAt: time.Now()}))

		s, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok-2", s.Token)
		assert.Nil(t, s.ExpiresAt)
	})

	t.Run("clear removes session", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx))
		require.NoError(t, repo.Clear(ctx))

		s, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, s)
	})
}
