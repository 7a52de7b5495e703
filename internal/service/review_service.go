package service

import (
	"context"
	"time"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

type ReviewService interface {
	Start(ctx context.Context, pullRequestID string) (*domain.Review, error)
	Finish(ctx context.Context, reviewID string, status domain.ReviewStatus, findings []*domain.Finding) (*domain.Review, error)
	ListByPullRequest(ctx context.Context, pullRequestID string) ([]*domain.Review, error)
	Latest(ctx context.Context, pullRequestID string) (*domain.Review, bool, error)
	ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]*domain.Review, error)
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Review, error)
	Stuck(ctx context.Context, olderThan time.Duration) ([]*domain.Review, error)
}
