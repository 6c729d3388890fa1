// Package store owns the local SQLite database handle. The process opens it
// once at start-up and passes it to every repository that needs it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/gameguesser/internal/client/migrations"
	"github.com/dmitrijs2005/gameguesser/internal/filex"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// RunMigrations applies the embedded goose migrations to db. A database
// whose recorded version differs from the newest embedded migration
// afterwards, such as one written by a newer build, is rejected.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	ms, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("collect migrations: %w", err)
	}
	last, err := ms.Last()
	if err != nil {
		return fmt.Errorf("collect migrations: %w", err)
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != last.Version {
		return fmt.Errorf("schema version %d, want %d", v, last.Version)
	}
	return nil
}

// Open opens the database at path and migrates it to the current schema.
// When the file cannot be opened or migrated it is treated as corrupt: the
// database and its -wal/-shm companions are deleted and a fresh store is
// built. Cached data is lost in that case.
func Open(ctx context.Context, path string, logger logging.Logger) (*sql.DB, error) {
	db, err := open(ctx, path)
	if err == nil {
		return db, nil
	}
	if path == MemoryPath {
		return nil, err
	}

	logger.Warn(ctx, "local store unusable, rebuilding", "path", path, "err", err)

	if rmErr := RemoveFiles(path); rmErr != nil {
		logger.Error(ctx, "failed to delete local store files", "path", path, "err", rmErr)
	}

	db, err = open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("rebuild local store: %w", err)
	}

	logger.Info(ctx, "local store rebuilt", "path", path)
	return db, nil
}

// RemoveFiles deletes the database file at path and its journal companions.
// Missing files are not an error.
func RemoveFiles(path string) error {
	var errs []error
	for _, name := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != MemoryPath {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
		dsn = path + "?_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == MemoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return db, nil
}
