package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

const reviewColumns = `
	SELECT id, pull_request_id, status, created_at, started_at, duration_ms
	FROM reviews
`

type reviewRepository struct {
	executor DBExecutor
}

func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{executor: db}
}

func NewReviewRepositoryWithTx(tx *sql.Tx) *reviewRepository {
	return &reviewRepository{executor: tx}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	review := &domain.Review{}
	var status string
	var durationMs sql.NullInt64
	err := row.Scan(
		&review.ID,
		&review.PullRequestID,
		&status,
		&review.CreatedAt,
		&review.StartedAt,
		&durationMs,
	)
	if err != nil {
		return nil, err
	}

	review.Status, err = domain.DecodeReviewStatus(status)
	if err != nil {
		return nil, err
	}
	review.DurationMs = int64Ptr(durationMs)

	return review, nil
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]*domain.Review, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save inserts the review or updates its mutable fields. The pull request a
// review belongs to is never changed by an update.
func (r *reviewRepository) Save(ctx context.Context, review *domain.Review) (err error) {
	if review.PullRequestID == "" {
		return domain.NewInvalidArgumentError("review pull request id is required")
	}
	if _, err := domain.ParseReviewStatus(string(review.Status)); err != nil {
		return err
	}
	if review.DurationMs != nil && *review.DurationMs < 0 {
		return domain.NewInvalidArgumentError("review duration must not be negative")
	}
	defer observe(ctx, reviewsRepo, "save", time.Now(), &err)

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	if review.StartedAt.IsZero() {
		review.StartedAt = review.CreatedAt
	}

	query := `
		INSERT INTO reviews (id, pull_request_id, status, created_at, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, started_at = EXCLUDED.started_at, duration_ms = EXCLUDED.duration_ms
	`

	_, err = r.executor.ExecContext(
		ctx,
		query,
		review.ID,
		review.PullRequestID,
		string(review.Status),
		review.CreatedAt,
		review.StartedAt,
		nullInt64(review.DurationMs),
	)
	return err
}

// UpdateStatus keeps the stored duration when durationMs is nil.
func (r *reviewRepository) UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus, durationMs *int64) (err error) {
	if id == "" {
		return domain.NewInvalidArgumentError("review id is required")
	}
	if _, err := domain.ParseReviewStatus(string(status)); err != nil {
		return err
	}
	defer observe(ctx, reviewsRepo, "update_status", time.Now(), &err)

	query := `
		UPDATE reviews
		SET status = $2, duration_ms = COALESCE($3, duration_ms)
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, string(status), nullInt64(durationMs))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("review")
	}

	return nil
}

// Of two concurrent callers exactly one sees finished=true.
func (r *reviewRepository) FinishRunning(ctx context.Context, id string, status domain.ReviewStatus, durationMs int64) (finished bool, err error) {
	if id == "" {
		return false, domain.NewInvalidArgumentError("review id is required")
	}
	if !status.IsTerminal() {
		return false, domain.NewInvalidArgumentError("review can only finish as COMPLETED, FAILED or CANCELLED, got %q", status)
	}
	if durationMs < 0 {
		return false, domain.NewInvalidArgumentError("review duration must not be negative")
	}
	defer observe(ctx, reviewsRepo, "finish_running", time.Now(), &err)

	query := `
		UPDATE reviews
		SET status = $2, duration_ms = $3
		WHERE id = $1 AND status IN ($4, $5)
	`

	result, err := r.executor.ExecContext(
		ctx,
		query,
		id,
		string(status),
		durationMs,
		string(domain.ReviewStatusPending),
		string(domain.ReviewStatusInProgress),
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (review *domain.Review, err error) {
	if id == "" {
		return nil, domain.NewInvalidArgumentError("review id is required")
	}
	defer observe(ctx, reviewsRepo, "get_by_id", time.Now(), &err)

	review, err = scanReview(r.executor.QueryRowContext(ctx, reviewColumns+`WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("review")
		}
		return nil, err
	}
	return review, nil
}

func (r *reviewRepository) FindByPullRequest(ctx context.Context, pullRequestID string) (reviews []*domain.Review, err error) {
	if pullRequestID == "" {
		return nil, domain.NewInvalidArgumentError("pull request id is required")
	}
	defer observe(ctx, reviewsRepo, "find_by_pull_request", time.Now(), &err)

	return r.queryReviews(ctx, reviewColumns+`WHERE pull_request_id = $1 ORDER BY created_at, id`, pullRequestID)
}

func (r *reviewRepository) FindByStatus(ctx context.Context, status domain.ReviewStatus) (reviews []*domain.Review, err error) {
	if _, err := domain.ParseReviewStatus(string(status)); err != nil {
		return nil, err
	}
	defer observe(ctx, reviewsRepo, "find_by_status", time.Now(), &err)

	return r.queryReviews(ctx, reviewColumns+`WHERE status = $1 ORDER BY created_at, id`, string(status))
}

// LatestForPullRequest picks the review with the greatest created_at; equal
// timestamps are resolved by the greatest id.
func (r *reviewRepository) LatestForPullRequest(ctx context.Context, pullRequestID string) (review *domain.Review, ok bool, err error) {
	if pullRequestID == "" {
		return nil, false, domain.NewInvalidArgumentError("pull request id is required")
	}
	defer observe(ctx, reviewsRepo, "latest_for_pull_request", time.Now(), &err)

	query := reviewColumns + `
		WHERE pull_request_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	review, err = scanReview(r.executor.QueryRowContext(ctx, query, pullRequestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return review, true, nil
}

// FindCreatedBetween includes both bounds.
func (r *reviewRepository) FindCreatedBetween(ctx context.Context, start, end time.Time) (reviews []*domain.Review, err error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.NewInvalidArgumentError("both start and end must be set")
	}
	if start.After(end) {
		return nil, domain.NewInvalidArgumentError("start %s is after end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	defer observe(ctx, reviewsRepo, "find_created_between", time.Now(), &err)

	return r.queryReviews(ctx, reviewColumns+`WHERE created_at BETWEEN $1 AND $2 ORDER BY created_at, id`, start, end)
}

func (r *reviewRepository) CountByStatus(ctx context.Context, status domain.ReviewStatus) (count int64, err error) {
	if _, err := domain.ParseReviewStatus(string(status)); err != nil {
		return 0, err
	}
	defer observe(ctx, reviewsRepo, "count_by_status", time.Now(), &err)

	err = r.executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE status = $1`, string(status)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reviewRepository) AverageDuration(ctx context.Context) (avgMs float64, ok bool, err error) {
	defer observe(ctx, reviewsRepo, "average_duration", time.Now(), &err)

	query := `
		SELECT AVG(duration_ms)::double precision
		FROM reviews
		WHERE duration_ms IS NOT NULL
	`

	var avg sql.NullFloat64
	if err := r.executor.QueryRowContext(ctx, query).Scan(&avg); err != nil {
		return 0, false, err
	}
	if !avg.Valid {
		return 0, false, nil
	}
	return avg.Float64, true, nil
}

// FindStuck returns IN_PROGRESS reviews started strictly before threshold.
func (r *reviewRepository) FindStuck(ctx context.Context, threshold time.Time) (reviews []*domain.Review, err error) {
	if threshold.IsZero() {
		return nil, domain.NewInvalidArgumentError("stuck threshold must be set")
	}
	defer observe(ctx, reviewsRepo, "find_stuck", time.Now(), &err)

	query := reviewColumns + `
		WHERE status = $1 AND started_at < $2
		ORDER BY started_at, id
	`
	return r.queryReviews(ctx, query, string(domain.ReviewStatusInProgress), threshold)
}
