package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed schema
var schemaFS embed.FS

// EnsurePostgresSchema creates the books table when it does not exist yet.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	return applySchema(ctx, "schema/postgres", logger, func(ctx context.Context, stmt string) error {
		_, err := pool.Exec(ctx, stmt)
		return err
	})
}

// EnsureSQLiteSchema is the SQLite counterpart of EnsurePostgresSchema.
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	return applySchema(ctx, "schema/sqlite", logger, func(ctx context.Context, stmt string) error {
		_, err := db.ExecContext(ctx, stmt)
		return err
	})
}

// applySchema runs every .sql file in dir in lexical order. Files must be idempotent.
func applySchema(ctx context.Context, dir string, logger *zap.Logger, exec func(context.Context, string) error) error {
	entries, err := fs.ReadDir(schemaFS, dir)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		filenames = append(filenames, entry.Name())
	}
	sort.Strings(filenames)

	for _, name := range filenames {
		content, err := fs.ReadFile(schemaFS, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read schema %s: %w", name, err)
		}

		logger.Debug("applying schema", zap.String("file", name))
		if err := exec(ctx, string(content)); err != nil {
			return fmt.Errorf("apply schema %s: %w", name, err)
		}
	}

	logger.Info("schema ensured", zap.Int("files", len(filenames)))
	return nil
}
