//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bagdasarian/openreview-store/internal/db"
	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/repository"
	"github.com/bagdasarian/openreview-store/internal/repository/postgres"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	// Создаём контейнер Postgres через testcontainers
	postgresContainer, err := tcpostgres.Run(ctx,
		"postgres:17.7",
		tcpostgres.WithDatabase("test_db"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, database.Ping())

	// Накатываем встроенные миграции
	require.NoError(t, db.RunMigrations(ctx, database), "не удалось применить миграции")

	t.Cleanup(func() {
		database.Close()
		require.NoError(t, postgresContainer.Terminate(ctx))
	})

	return database
}

type fixture struct {
	db       *sql.DB
	prs      repository.PullRequestRepository
	reviews  repository.ReviewRepository
	findings repository.FindingRepository
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	database := setupTestDB(t)

	return &fixture{
		db:       database,
		prs:      postgres.NewPullRequestRepository(database),
		reviews:  postgres.NewReviewRepository(database),
		findings: postgres.NewFindingRepository(database),
	}
}

func (f *fixture) createPR(t *testing.T, number int) *domain.PullRequest {
	t.Helper()
	pr := &domain.PullRequest{RepoFullName: "acme/api", Number: number, Title: "PR"}
	require.NoError(t, f.prs.Save(context.Background(), pr))
	return pr
}

func (f *fixture) createReview(t *testing.T, prID string, status domain.ReviewStatus, createdAt time.Time, durationMs *int64) *domain.Review {
	t.Helper()
	review := &domain.Review{
		PullRequestID: prID,
		Status:        status,
		CreatedAt:     createdAt,
		StartedAt:     createdAt,
		DurationMs:    durationMs,
	}
	require.NoError(t, f.reviews.Save(context.Background(), review))
	return review
}

func int64Ptr(v int64) *int64 {
	return &v
}
