package service

import (
	"context"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/repository"
)

type findingService struct {
	findingRepo repository.FindingRepository
}

func NewFindingService(findingRepo repository.FindingRepository) FindingService {
	return &findingService{findingRepo: findingRepo}
}

// ListByReview возвращает findings review, опционально только заданной severity
func (s *findingService) ListByReview(ctx context.Context, reviewID string, severity *domain.SeverityLevel) ([]*domain.Finding, error) {
	if severity != nil {
		return s.findingRepo.FindByReviewAndSeverity(ctx, reviewID, *severity)
	}
	return s.findingRepo.FindByReview(ctx, reviewID)
}

func (s *findingService) ListByType(ctx context.Context, findingType domain.FindingType) ([]*domain.Finding, error) {
	return s.findingRepo.FindByType(ctx, findingType)
}

func (s *findingService) ListBySeverity(ctx context.Context, severity domain.SeverityLevel) ([]*domain.Finding, error) {
	return s.findingRepo.FindBySeverity(ctx, severity)
}

func (s *findingService) ListByFile(ctx context.Context, file string) ([]*domain.Finding, error) {
	return s.findingRepo.FindByFile(ctx, file)
}

func (s *findingService) ListUnposted(ctx context.Context) ([]*domain.Finding, error) {
	return s.findingRepo.FindWithoutComment(ctx)
}

func (s *findingService) CountByReviewAndType(ctx context.Context, reviewID string, findingType domain.FindingType) (int64, error) {
	return s.findingRepo.CountByReviewAndType(ctx, reviewID, findingType)
}

// MarkCommented записывает id комментария и возвращает обновленный finding
func (s *findingService) MarkCommented(ctx context.Context, findingID string, commentID int64) (*domain.Finding, error) {
	if err := s.findingRepo.MarkCommented(ctx, findingID, commentID); err != nil {
		return nil, err
	}
	return s.findingRepo.GetByID(ctx, findingID)
}
