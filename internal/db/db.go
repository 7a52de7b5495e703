package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/bagdasarian/openreview-store/internal/config"
	"github.com/bagdasarian/openreview-store/internal/logger"
)

const pingTimeout = 5 * time.Second

func NewPostgres(cfg *config.Config) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	connConfig.Tracer = &queryTracer{threshold: cfg.Database.SlowQueryThreshold}

	db := stdlib.OpenDB(*connConfig)
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to PostgreSQL",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
	)

	if cfg.Database.MigrateOnStart {
		if err := RunMigrations(context.Background(), db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

func MustLoad(cfg *config.Config) *sql.DB {
	db, err := NewPostgres(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	return db
}
