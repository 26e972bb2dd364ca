package migration

import (
	"context"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"helpdesk/internal/shared/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestUp_CreatesSessionsTable(t *testing.T) {
	db := openMemory(t)

	ctx := context.Background()
	require.NoError(t, Up(ctx, db, logger.NewNop()))
	// Running twice is a no-op.
	require.NoError(t, Up(ctx, db, logger.NewNop()))

	assert.True(t, db.Migrator().HasTable("sessions"))

	version, err := Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestDown_RollsBackAndStatusReportsPending(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	require.NoError(t, Up(ctx, db, logger.NewNop()))

	statuses, err := Status(ctx, db)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, goose.StateApplied, statuses[0].State)

	// Asking for more steps than applied stops at the bottom.
	require.NoError(t, Down(ctx, db, 3, logger.NewNop()))
	assert.False(t, db.Migrator().HasTable("sessions"))

	statuses, err = Status(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, goose.StatePending, statuses[0].State)
}
