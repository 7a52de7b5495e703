package repository

import (
	"context"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

type FindingRepository interface {
	SaveAll(ctx context.Context, findings []*domain.Finding) error
	MarkCommented(ctx context.Context, findingID string, commentID int64) error
	GetByID(ctx context.Context, id string) (*domain.Finding, error)
	FindByReview(ctx context.Context, reviewID string) ([]*domain.Finding, error)
	FindByType(ctx context.Context, findingType domain.FindingType) ([]*domain.Finding, error)
	FindBySeverity(ctx context.Context, severity domain.SeverityLevel) ([]*domain.Finding, error)
	FindByFile(ctx context.Context, file string) ([]*domain.Finding, error)
	FindByReviewAndSeverity(ctx context.Context, reviewID string, severity domain.SeverityLevel) ([]*domain.Finding, error)
	CountByReviewAndType(ctx context.Context, reviewID string, findingType domain.FindingType) (int64, error)
	MostCommonTypes(ctx context.Context) ([]domain.FindingTypeCount, error)
	FindWithoutComment(ctx context.Context) ([]*domain.Finding, error)
}
