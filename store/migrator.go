package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"embed"

	"github.com/pkg/errors"
)

// Migration System Overview:
//
// Schema changes are shipped as numbered SQL files and applied once at
// startup, in order, inside a single transaction. Applied file names are
// recorded in migration_history so reruns are idempotent and safe to execute
// concurrently with ordinary reads.
//
// Columns that arrived after the initial release (is_favorite, error_count,
// last_modified) are registered migration steps here, not runtime ALTER
// TABLE branches on the query path.
//
// Migration Files:
// - Location: store/migration/{driver}/NN__description.sql
// - Naming: NN is a zero-padded number, description is human-readable
// - Ordering: Files sorted lexicographically and applied in order

//go:embed migration
var migrationFS embed.FS

const (
	// MigrateFileNameSplit is the split character between the migration number
	// and the description in the migration file name.
	// For example, "0001__init.sql".
	MigrateFileNameSplit = "__"
)

// validateMigrationFileName checks if a migration file follows the expected
// naming convention "NN__description.sql".
func validateMigrationFileName(filename string) error {
	if !strings.Contains(filename, MigrateFileNameSplit) {
		return errors.Errorf("invalid migration filename format (missing %s): %s", MigrateFileNameSplit, filename)
	}
	parts := strings.Split(filename, MigrateFileNameSplit)
	if len(parts) < 2 {
		return errors.Errorf("invalid migration filename format: %s", filename)
	}
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return errors.Errorf("migration filename must start with a number: %s", filename)
	}
	return nil
}

// Migrate brings the database schema up to date by applying every migration
// file that is not yet recorded in migration_history.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.ensureMigrationHistory(ctx); err != nil {
		return errors.Wrap(err, "failed to ensure migration history table")
	}

	applied, err := s.listAppliedMigrations(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list applied migrations")
	}

	filePaths, err := fs.Glob(migrationFS, fmt.Sprintf("%s*.sql", s.getMigrationBasePath()))
	if err != nil {
		return errors.Wrap(err, "failed to read migration files")
	}
	sort.Strings(filePaths)

	pending := make([]string, 0, len(filePaths))
	for _, filePath := range filePaths {
		filename := filepath.Base(filePath)
		if err := validateMigrationFileName(filename); err != nil {
			return err
		}
		if !applied[filename] {
			pending = append(pending, filePath)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	// Apply all pending migrations atomically.
	tx, err := s.driver.GetDB().Begin()
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	defer tx.Rollback()

	for _, filePath := range pending {
		slog.Info("applying migration", slog.String("file", filePath))
		bytes, err := migrationFS.ReadFile(filePath)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration file: %s", filePath)
		}
		if err := s.execute(ctx, tx, string(bytes)); err != nil {
			return errors.Wrapf(err, "failed to execute migration %s", filePath)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO migration_history (version) VALUES (?)",
			filepath.Base(filePath),
		); err != nil {
			return errors.Wrapf(err, "failed to record migration %s", filePath)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit migration transaction")
	}

	slog.Info("migration completed", slog.Int("migrationsApplied", len(pending)))
	return nil
}

// ensureMigrationHistory creates the bookkeeping table on first run.
func (s *Store) ensureMigrationHistory(ctx context.Context) error {
	_, err := s.driver.GetDB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migration_history (
			version TEXT NOT NULL PRIMARY KEY,
			created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)`)
	return err
}

func (s *Store) listAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := s.driver.GetDB().QueryContext(ctx, "SELECT version FROM migration_history")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (s *Store) getMigrationBasePath() string {
	return fmt.Sprintf("migration/%s/", s.profile.Driver)
}

// execute executes a SQL statement within a transaction context.
func (s *Store) execute(ctx context.Context, tx *sql.Tx, stmt string) error {
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return nil
}
