package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/bagdasarian/openreview-store/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending embedded migration.
// A dirty schema is reported instead of being forced.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	migrator, err := newMigrator(ctx, db)
	if err != nil {
		return err
	}
	defer closeMigrator(migrator)

	_, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("failed to apply migrations: database is in dirty state")
	}

	logger.Info("running database migrations")
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("database migrations completed")

	return nil
}

// RollbackMigrations reverts the schema completely.
func RollbackMigrations(ctx context.Context, db *sql.DB) error {
	migrator, err := newMigrator(ctx, db)
	if err != nil {
		return err
	}
	defer closeMigrator(migrator)

	if err := migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// newMigrator runs on a dedicated connection taken from the pool.
// Closing the migrator returns that connection and leaves db open.
func newMigrator(ctx context.Context, db *sql.DB) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = sourceDriver.Close()
		return nil, fmt.Errorf("failed to acquire migration connection: %w", err)
	}

	dbDriver, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		_ = sourceDriver.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		_ = sourceDriver.Close()
		_ = dbDriver.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return migrator, nil
}

func closeMigrator(migrator *migrate.Migrate) {
	sourceErr, dbErr := migrator.Close()
	if sourceErr != nil || dbErr != nil {
		logger.Warn("failed to close migrator", zap.NamedError("source", sourceErr), zap.NamedError("database", dbErr))
	}
}
