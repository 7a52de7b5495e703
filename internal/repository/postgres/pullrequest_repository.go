package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

type pullRequestRepository struct {
	executor DBExecutor
}

func NewPullRequestRepository(db *sql.DB) *pullRequestRepository {
	return &pullRequestRepository{executor: db}
}

func NewPullRequestRepositoryWithTx(tx *sql.Tx) *pullRequestRepository {
	return &pullRequestRepository{executor: tx}
}

func (r *pullRequestRepository) Save(ctx context.Context, pr *domain.PullRequest) (err error) {
	if strings.TrimSpace(pr.RepoFullName) == "" {
		return domain.NewInvalidArgumentError("pull request repository name is required")
	}
	if pr.Number <= 0 {
		return domain.NewInvalidArgumentError("pull request number must be positive, got %d", pr.Number)
	}
	defer observe(ctx, pullRequestsRepo, "save", time.Now(), &err)

	if pr.ID == "" {
		pr.ID = uuid.NewString()
	}
	if pr.CreatedAt.IsZero() {
		pr.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO pull_requests (id, repo_full_name, number, title, head_sha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, head_sha = EXCLUDED.head_sha
	`

	_, err = r.executor.ExecContext(
		ctx,
		query,
		pr.ID,
		pr.RepoFullName,
		pr.Number,
		pr.Title,
		pr.HeadSHA,
		pr.CreatedAt,
	)
	return err
}

func (r *pullRequestRepository) GetByID(ctx context.Context, id string) (pr *domain.PullRequest, err error) {
	if id == "" {
		return nil, domain.NewInvalidArgumentError("pull request id is required")
	}
	defer observe(ctx, pullRequestsRepo, "get_by_id", time.Now(), &err)

	query := `
		SELECT id, repo_full_name, number, title, head_sha, created_at
		FROM pull_requests
		WHERE id = $1
	`

	pr = &domain.PullRequest{}
	err = r.executor.QueryRowContext(ctx, query, id).Scan(
		&pr.ID,
		&pr.RepoFullName,
		&pr.Number,
		&pr.Title,
		&pr.HeadSHA,
		&pr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("pull request")
		}
		return nil, err
	}

	return pr, nil
}
