package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bagdasarian/openreview-store/internal/logger"
)

type queryTracer struct {
	threshold time.Duration
}

type queryStartKey struct{}
type querySQLKey struct{}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx = context.WithValue(ctx, queryStartKey{}, time.Now())
	return context.WithValue(ctx, querySQLKey{}, data.SQL)
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}

	duration := time.Since(start)
	if t.threshold <= 0 || duration <= t.threshold {
		return
	}

	query, _ := ctx.Value(querySQLKey{}).(string)
	fields := []zap.Field{
		zap.Int64("duration_ms", duration.Milliseconds()),
		zap.String("sql", truncateSQL(query, 200)),
	}
	if data.Err != nil {
		fields = append(fields, zap.Error(data.Err))
	}
	logger.Warn("slow query detected", fields...)
}

func truncateSQL(query string, maxLen int) string {
	if len(query) <= maxLen {
		return query
	}
	return query[:maxLen] + "..."
}
