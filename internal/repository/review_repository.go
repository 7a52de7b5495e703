package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

type ReviewRepository interface {
	Save(ctx context.Context, review *domain.Review) error
	UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus, durationMs *int64) error
	// FinishRunning moves a PENDING or IN_PROGRESS review to a terminal status.
	// It returns finished=false when the review is missing or already terminal.
	FinishRunning(ctx context.Context, id string, status domain.ReviewStatus, durationMs int64) (finished bool, err error)
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	FindByPullRequest(ctx context.Context, pullRequestID string) ([]*domain.Review, error)
	FindByStatus(ctx context.Context, status domain.ReviewStatus) ([]*domain.Review, error)
	// LatestForPullRequest returns ok=false when the pull request has no reviews.
	LatestForPullRequest(ctx context.Context, pullRequestID string) (review *domain.Review, ok bool, err error)
	FindCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Review, error)
	CountByStatus(ctx context.Context, status domain.ReviewStatus) (int64, error)
	// AverageDuration returns ok=false when no review has a recorded duration.
	AverageDuration(ctx context.Context) (avgMs float64, ok bool, err error)
	FindStuck(ctx context.Context, threshold time.Time) ([]*domain.Review, error)
}
