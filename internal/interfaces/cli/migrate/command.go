// Package migrate manages the schema of the local session database.
package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/migration"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/logger"
)

func NewCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Session database migration tools",
		Long:  `Apply, roll back and inspect the migrations of the local session database. Other commands apply pending migrations on their own.`,
	}

	cmd.AddCommand(
		newUpCommand(opts),
		newDownCommand(opts),
		newStatusCommand(opts),
	)
	return cmd
}

func newUpCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, opts, func(ctx context.Context, db *gorm.DB, log logger.Interface) error {
				log.Infow("running up migrations")
				if err := migration.Up(ctx, db, log); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				version, err := migration.Version(ctx, db)
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %d\n", version)
				return nil
			})
		},
	}
}

func newDownCommand(opts *app.Options) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a number of migrations. Rolling back the sessions table signs the console out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("steps must be positive, got %d", steps)
			}
			return withDB(cmd, opts, func(ctx context.Context, db *gorm.DB, log logger.Interface) error {
				log.Infow("running down migrations", "steps", steps)
				if err := migration.Down(ctx, db, steps, log); err != nil {
					return fmt.Errorf("down migration failed: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, opts, func(ctx context.Context, db *gorm.DB, log logger.Interface) error {
				statuses, err := migration.Status(ctx, db)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "\nMigration Status:\n")
				for _, st := range statuses {
					applied := "pending"
					if !st.AppliedAt.IsZero() {
						applied = biztime.FormatDateTime(st.AppliedAt)
					}
					fmt.Fprintf(out, "  %05d  %-8s  %s\n", st.Source.Version, st.State, applied)
				}
				return nil
			})
		},
	}
}

func withDB(cmd *cobra.Command, opts *app.Options, fn func(ctx context.Context, db *gorm.DB, log logger.Interface) error) error {
	cfg, log, err := app.Init(*opts)
	if err != nil {
		return err
	}
	if err := biztime.Init(cfg.UI.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	db, err := database.Open(cfg.Session, log)
	if err != nil {
		return fmt.Errorf("failed to open session database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("failed to close session database", "error", err)
		}
	}()
	return fn(cmd.Context(), db, log)
}
