package database

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Migrator handles database schema migrations
type Migrator struct {
	pool   *pgxpool.Pool
	fsys   fs.FS
	dir    string
	logger *zap.Logger
}

// NewMigratorWithFS creates a migration runner over an embedded (or any)
// filesystem.
//
// Parameters:
//   - pool: PostgreSQL connection pool
//   - fsys: filesystem holding the *.sql files
//   - dir: directory inside fsys ("." for the root)
func NewMigratorWithFS(pool *pgxpool.Pool, fsys fs.FS, dir string, logger *zap.Logger) *Migrator {
	return &Migrator{pool: pool, fsys: fsys, dir: dir, logger: logger}
}

// RunMigrations executes all pending database migrations
//
// This function:
//  1. Creates the schema_migrations tracking table if it doesn't exist
//  2. Lists *.sql files in lexical order
//  3. Skips migrations that have already been run and reset scripts
//  4. Executes each new migration and records it
func (m *Migrator) RunMigrations(ctx context.Context) error {
	m.logger.Info("starting database migrations")

	if err := m.createMigrationsTable(ctx); err != nil {
		return errors.Wrap(err, "failed to create migrations table")
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get applied migrations")
	}

	pending, err := PendingMigrations(m.fsys, m.dir, applied)
	if err != nil {
		return err
	}

	for _, filename := range pending {
		content, err := fs.ReadFile(m.fsys, path.Join(m.dir, filename))
		if err != nil {
			return errors.Wrapf(err, "failed to read migration %s", filename)
		}

		m.logger.Info("running migration", zap.String("file", filename))
		if _, err := m.pool.Exec(ctx, string(content)); err != nil {
			return errors.Wrapf(err, "failed to run migration %s", filename)
		}

		if err := m.recordMigration(ctx, filename); err != nil {
			return errors.Wrapf(err, "failed to record migration %s", filename)
		}
	}

	if len(pending) > 0 {
		m.logger.Info("migrations applied", zap.Int("count", len(pending)))
	} else {
		m.logger.Info("database is up to date")
	}
	return nil
}

// PendingMigrations returns the *.sql files in dir that are not yet applied,
// sorted lexically. Files whose name contains "reset" are never returned.
func PendingMigrations(fsys fs.FS, dir string, applied map[string]bool) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migrations directory")
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		if strings.Contains(name, "reset") || applied[name] {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := m.pool.Exec(ctx, query)
	return err
}

func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := m.pool.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) recordMigration(ctx context.Context, filename string) error {
	query := `
		INSERT INTO schema_migrations (filename)
		VALUES ($1)
		ON CONFLICT (filename) DO NOTHING
	`
	_, err := m.pool.Exec(ctx, query, filename)
	return err
}
