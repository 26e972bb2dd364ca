// Package migration applies the embedded schema of the local session database.
package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"helpdesk/internal/shared/logger"
)

//go:embed scripts/*.sql
var scripts embed.FS

// Up applies every pending migration.
func Up(ctx context.Context, db *gorm.DB, log logger.Interface) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current database version: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		log.Errorw("goose migration failed", "error", err)
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	if len(results) > 0 {
		final, _ := provider.GetDBVersion(ctx)
		log.Infow("goose migration completed",
			"from_version", current,
			"to_version", final,
			"applied", len(results),
		)
	}
	return nil
}

// Version returns the schema version recorded in the database.
func Version(ctx context.Context, db *gorm.DB) (int64, error) {
	provider, err := newProvider(db)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

// Down rolls back up to steps applied migrations, newest first.
func Down(ctx context.Context, db *gorm.DB, steps int, log logger.Interface) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		result, err := provider.Down(ctx)
		if errors.Is(err, goose.ErrNoNextVersion) {
			break
		}
		if err != nil {
			log.Errorw("goose rollback failed", "error", err)
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		log.Infow("migration rolled back", "version", result.Source.Version)
	}
	return nil
}

// Status lists every known migration with whether it is applied.
func Status(ctx context.Context, db *gorm.DB) ([]*goose.MigrationStatus, error) {
	provider, err := newProvider(db)
	if err != nil {
		return nil, err
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration status: %w", err)
	}
	return statuses, nil
}

func newProvider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	fsys, err := fs.Sub(scripts, "scripts")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return provider, nil
}
