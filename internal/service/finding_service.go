package service

import (
	"context"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

type FindingService interface {
	ListByReview(ctx context.Context, reviewID string, severity *domain.SeverityLevel) ([]*domain.Finding, error)
	ListByType(ctx context.Context, findingType domain.FindingType) ([]*domain.Finding, error)
	ListBySeverity(ctx context.Context, severity domain.SeverityLevel) ([]*domain.Finding, error)
	ListByFile(ctx context.Context, file string) ([]*domain.Finding, error)
	ListUnposted(ctx context.Context) ([]*domain.Finding, error)
	CountByReviewAndType(ctx context.Context, reviewID string, findingType domain.FindingType) (int64, error)
	MarkCommented(ctx context.Context, findingID string, commentID int64) (*domain.Finding, error)
}
