package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

// SQLSTATE classes that mean the server could not serve the request at all:
// 08 connection exception, 53 insufficient resources, 57P operator intervention.
var unavailableClasses = []string{"08", "53", "57P"}

const (
	queryCanceled = "57014"
	errDBClosed   = "sql: database is closed"
)

// classifyError maps driver errors onto the domain taxonomy. Errors that are
// already domain errors pass through unchanged. Nothing is retried here.
func classifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.Wrap(domain.ErrCancelled, err)
	}

	if isUnavailable(err) {
		return domain.Wrap(domain.ErrStorageUnavailable, err)
	}

	return fmt.Errorf("postgres: %w", err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// database/sql does not export its closed-pool error.
	if strings.HasSuffix(err.Error(), errDBClosed) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == queryCanceled {
			return true
		}
		for _, class := range unavailableClasses {
			if strings.HasPrefix(pgErr.Code, class) {
				return true
			}
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return pgconn.Timeout(err)
}
