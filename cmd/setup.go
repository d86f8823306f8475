package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/hbnb/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when it is missing and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = r.configPath
	}

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	if r.store == nil {
		return fmt.Errorf("%w: storage not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("running database migrations", "path", r.config.Database.Path)
	applied, err := shared.RunMigrations(ctx, r.store.DB())
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Applied %d migration(s) to %s\n", applied, r.config.Database.Path)
}

// DBRollback rolls back the most recently applied migration.
func (r *Runner) DBRollback(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: storage not initialized", shared.ErrServiceUnavailable)
	}

	version, err := shared.RollbackMigration(ctx, r.store.DB())
	if err != nil {
		return err
	}

	r.logger.Info("rolled back migration", "version", version)
	return r.writePlain("✓ Rolled back migration %d\n", version)
}

// DBStatus prints every known migration and whether it has been applied.
func (r *Runner) DBStatus(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: storage not initialized", shared.ErrServiceUnavailable)
	}

	states, err := shared.MigrationStatus(ctx, r.store.DB())
	if err != nil {
		return err
	}

	r.writePlainHeader("Migrations")
	for _, s := range states {
		if s.Applied {
			r.writePlain("✓ %03d %-28s %s\n", s.Version, s.Name, s.AppliedAt.Format("2006-01-02 15:04:05"))
		} else {
			r.writePlain("· %03d %-28s pending\n", s.Version, s.Name)
		}
	}
	return nil
}
