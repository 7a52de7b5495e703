package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/logger"
	"github.com/bagdasarian/openreview-store/internal/metrics"
)

// DBExecutor is satisfied by both *sql.DB and *sql.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	pullRequestsRepo = "pull_requests"
	reviewsRepo      = "reviews"
	findingsRepo     = "findings"
	transactionsRepo = "transactions"
)

// observe classifies *errp and records metrics for one repository call.
// It must be deferred after argument validation so rejected calls are not counted as queries.
func observe(ctx context.Context, repository, operation string, start time.Time, errp *error) {
	*errp = classifyError(ctx, *errp)
	metrics.RecordDBQuery(repository, operation, time.Since(start))

	if *errp == nil {
		return
	}

	code := "INTERNAL"
	var domainErr *domain.DomainError
	if errors.As(*errp, &domainErr) {
		code = domainErr.Code
	}
	metrics.RecordDBError(repository, operation, code)

	if code == domain.CodeNotFound || code == domain.CodeAlreadyCommented || code == domain.CodeCancelled {
		return
	}
	logger.Warn("database operation failed",
		zap.String("repository", repository),
		zap.String("operation", operation),
		zap.String("code", code),
		zap.Error(*errp),
	)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
