package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	createMigrationsTableQuery = `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    TEXT PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`

	migrationAppliedQuery = `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`

	recordMigrationQuery = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

type migration struct {
	version string
	sql     string
}

// Migrate applies every embedded migration not yet recorded in
// schema_migrations, in file name order, each in its own transaction.
func Migrate(ctx context.Context, db DBPool, logger *slog.Logger) error {
	migrations, err := loadMigrations(migrationFiles)
	if err != nil {
		return err
	}
	return applyMigrations(ctx, db, migrations, logger.With("component", "Migrator"))
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		version := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".sql")
		migrations = append(migrations, migration{version: version, sql: string(body)})
	}
	return migrations, nil
}

func applyMigrations(ctx context.Context, db DBPool, migrations []migration, logger *slog.Logger) error {
	if _, err := db.Exec(ctx, createMigrationsTableQuery); err != nil {
		return fmt.Errorf("%w: failed to create schema_migrations: %w", apperrors.ErrDatabase, err)
	}

	for _, m := range migrations {
		var applied bool
		if err := db.QueryRow(ctx, migrationAppliedQuery, m.version).Scan(&applied); err != nil {
			return fmt.Errorf("%w: failed to check migration %s: %w", apperrors.ErrDatabase, m.version, err)
		}
		if applied {
			logger.DebugContext(ctx, "Migration already applied", slog.String("version", m.version))
			continue
		}

		if err := applyMigration(ctx, db, m); err != nil {
			logger.ErrorContext(ctx, "Migration failed", slog.String("version", m.version), slog.Any("error", err))
			return err
		}
		logger.InfoContext(ctx, "Migration applied", slog.String("version", m.version))
	}
	return nil
}

func applyMigration(ctx context.Context, db DBPool, m migration) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin migration %s: %w", apperrors.ErrDatabase, m.version, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx, m.sql); err != nil {
		return fmt.Errorf("%w: failed to run migration %s: %w", apperrors.ErrDatabase, m.version, err)
	}
	if _, err = tx.Exec(ctx, recordMigrationQuery, m.version); err != nil {
		return fmt.Errorf("%w: failed to record migration %s: %w", apperrors.ErrDatabase, m.version, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit migration %s: %w", apperrors.ErrDatabase, m.version, err)
	}
	return nil
}
