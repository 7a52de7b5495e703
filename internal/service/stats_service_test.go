package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Summary(t *testing.T) {
	t.Run("успешное получение статистики", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		findingRepo := new(MockFindingRepository)
		svc := NewStatsService(reviewRepo, findingRepo)

		for i, status := range domain.ReviewStatuses() {
			reviewRepo.On("CountByStatus", mock.Anything, status).Return(int64(i), nil).Once()
		}
		reviewRepo.On("AverageDuration", mock.Anything).Return(1500.0, true, nil).Once()
		types := []domain.FindingTypeCount{
			{Type: domain.FindingTypeStyle, Count: 4},
			{Type: domain.FindingTypeBug, Count: 1},
		}
		findingRepo.On("MostCommonTypes", mock.Anything).Return(types, nil).Once()

		stats, err := svc.Summary(context.Background())

		require.NoError(t, err)
		require.Len(t, stats.ReviewsByStatus, len(domain.ReviewStatuses()))
		for i, status := range domain.ReviewStatuses() {
			assert.Equal(t, status, stats.ReviewsByStatus[i].Status)
			assert.Equal(t, int64(i), stats.ReviewsByStatus[i].Count)
		}
		require.NotNil(t, stats.AverageDurationMs)
		assert.Equal(t, 1500.0, *stats.AverageDurationMs)
		assert.Equal(t, types, stats.MostCommonFindingTypes)
		reviewRepo.AssertExpectations(t)
		findingRepo.AssertExpectations(t)
	})

	t.Run("нет длительностей", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		findingRepo := new(MockFindingRepository)
		svc := NewStatsService(reviewRepo, findingRepo)

		reviewRepo.On("CountByStatus", mock.Anything, mock.Anything).Return(int64(0), nil)
		reviewRepo.On("AverageDuration", mock.Anything).Return(0.0, false, nil).Once()
		findingRepo.On("MostCommonTypes", mock.Anything).Return([]domain.FindingTypeCount{}, nil).Once()

		stats, err := svc.Summary(context.Background())

		require.NoError(t, err)
		assert.Nil(t, stats.AverageDurationMs)
		assert.Empty(t, stats.MostCommonFindingTypes)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		findingRepo := new(MockFindingRepository)
		svc := NewStatsService(reviewRepo, findingRepo)

		reviewRepo.On("CountByStatus", mock.Anything, mock.Anything).Return(int64(0), nil)
		reviewRepo.On("AverageDuration", mock.Anything).Return(0.0, false, nil)
		findingRepo.On("MostCommonTypes", mock.Anything).Return(nil, domain.ErrStorageUnavailable)

		stats, err := svc.Summary(context.Background())

		require.Error(t, err)
		assert.Nil(t, stats)
		assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
	})
}
