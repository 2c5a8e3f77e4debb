package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/openedx/programs-admin/internal/db"
)

// Migrator applies the numbered SQL files of a directory once each, tracking them in
// schema_migrations.
type Migrator struct {
	db     db.Querier
	logger zerolog.Logger
	now    func() time.Time
}

// NewMigrator creates a new migrator
func NewMigrator(q db.Querier, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     q,
		logger: logger.With().Str("component", "migrator").Logger(),
		now:    time.Now,
	}
}

const createMigrationTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	if _, err := m.db.Exec(ctx, createMigrationTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Version returns the numeric prefix of a migration file name ("001_init.sql" => "001").
func Version(filename string) string {
	return strings.SplitN(filepath.Base(filename), "_", 2)[0]
}

// MigrateFromFile applies one file inside a transaction unless its version is recorded.
// It reports whether the file was applied.
func (m *Migrator) MigrateFromFile(ctx context.Context, filePath string) (bool, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return false, err
	}

	filename := filepath.Base(filePath)
	version := Version(filename)

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return false, err
	}
	if applied {
		m.logger.Debug().Str("file", filename).Msg("Migration already applied, skipping")
		return false, nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to read migration file: %w", err)
	}

	err = db.WithTransaction(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", filename, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`, version, m.now()); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	m.logger.Info().Str("file", filename).Msg("Migration applied")
	return true, nil
}

// MigrateFromDirectory applies every pending .sql file of dirPath in name order and returns
// how many were applied.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) (int, error) {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	count := 0
	for _, file := range sqlFiles {
		applied, err := m.MigrateFromFile(ctx, filepath.Join(dirPath, file))
		if err != nil {
			return count, err
		}
		if applied {
			count++
		}
	}
	return count, nil
}
