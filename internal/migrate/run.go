// Package migrate applies the embedded SQL migrations for the outcome journal.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/target/text2ture/internal/data/pgxutil"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run applies every embedded migration that has not been recorded yet. It is safe to call repeatedly.
func Run(ctx context.Context, db *sql.DB) error {
	return run(ctx, db, migrationsFS)
}

func run(ctx context.Context, db *sql.DB, fsys fs.ReadFileFS) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	files, err := migrationFiles(fsys)
	if err != nil {
		return err
	}

	logger := slog.Default().With("component", "migrations")
	for _, f := range files {
		if err := applyMigration(ctx, db, fsys, migration{file: f, logger: logger}); err != nil {
			return err
		}
	}
	return nil
}

// migrationFiles lists *.sql files in lexical order.
func migrationFiles(fsys fs.ReadFileFS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

type migration struct {
	file   string
	logger *slog.Logger
}

func (m migration) version() string { return strings.TrimSuffix(m.file, ".sql") }

func applyMigration(ctx context.Context, db *sql.DB, fsys fs.ReadFileFS, m migration) error {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, m.version(),
	).Scan(&exists); err != nil {
		return fmt.Errorf("check migration %s: %w", m.file, err)
	}
	if exists {
		return nil
	}

	sqlBytes, err := fsys.ReadFile("migrations/" + m.file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", m.file, err)
	}

	m.logger.InfoContext(ctx, "applying migration", "version", m.version())

	return pgxutil.WithSQLTx(ctx, db, nil, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("exec migration %s: %w", m.file, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.version()); err != nil {
			return fmt.Errorf("record migration %s: %w", m.file, err)
		}
		return nil
	})
}
