package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/repository"
)

type statsService struct {
	reviewRepo  repository.ReviewRepository
	findingRepo repository.FindingRepository
}

func NewStatsService(reviewRepo repository.ReviewRepository, findingRepo repository.FindingRepository) StatsService {
	return &statsService{
		reviewRepo:  reviewRepo,
		findingRepo: findingRepo,
	}
}

// Summary собирает агрегаты параллельно; при первой ошибке результат не возвращается
func (s *statsService) Summary(ctx context.Context) (*domain.Stats, error) {
	statuses := domain.ReviewStatuses()
	counts := make([]domain.StatusCount, len(statuses))

	var (
		avg    float64
		hasAvg bool
		types  []domain.FindingTypeCount
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, status := range statuses {
		g.Go(func() error {
			count, err := s.reviewRepo.CountByStatus(gctx, status)
			if err != nil {
				return err
			}
			counts[i] = domain.StatusCount{Status: status, Count: count}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		avg, hasAvg, err = s.reviewRepo.AverageDuration(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		types, err = s.findingRepo.MostCommonTypes(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		ReviewsByStatus:        counts,
		MostCommonFindingTypes: types,
	}
	if hasAvg {
		stats.AverageDurationMs = &avg
	}
	return stats, nil
}
