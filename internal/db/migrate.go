package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/nucleotide/internal/db/migrations"
)

// RunMigrations applies every pending embedded migration on the given DSN.
func RunMigrations(ctx context.Context, dsn string) error {
	return withGoose(dsn, func(sqlDB *sql.DB) error {
		if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		version, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		slog.Info("database schema up to date", "version", version)
		return nil
	})
}

// SchemaVersion returns the version of the last applied migration.
func SchemaVersion(ctx context.Context, dsn string) (int64, error) {
	var version int64
	err := withGoose(dsn, func(sqlDB *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// withGoose opens a database/sql handle through the pgx driver, since goose
// does not work with pgxpool directly.
func withGoose(dsn string, fn func(*sql.DB) error) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return fn(sqlDB)
}
