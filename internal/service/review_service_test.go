package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupReviewService() (*reviewService, *MockPullRequestRepository, *MockReviewRepository, *MockFindingRepository) {
	prRepo := new(MockPullRequestRepository)
	reviewRepo := new(MockReviewRepository)
	findingRepo := new(MockFindingRepository)
	transactor := &MockTransactor{Tx: repository.Tx{
		PullRequests: prRepo,
		Reviews:      reviewRepo,
		Findings:     findingRepo,
	}}

	svc := NewReviewService(reviewRepo, transactor, 30*time.Minute).(*reviewService)
	svc.now = func() time.Time { return fixedNow }

	return svc, prRepo, reviewRepo, findingRepo
}

func TestReviewService_Start(t *testing.T) {
	t.Run("успешный старт review", func(t *testing.T) {
		svc, prRepo, reviewRepo, _ := setupReviewService()
		ctx := context.Background()

		prRepo.On("GetByID", mock.Anything, "pr-1").Return(&domain.PullRequest{ID: "pr-1"}, nil).Once()
		reviewRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
			return r.PullRequestID == "pr-1" && r.Status == domain.ReviewStatusInProgress && r.StartedAt.Equal(fixedNow)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Review).ID = "rev-1"
		}).Return(nil).Once()

		review, err := svc.Start(ctx, "pr-1")

		require.NoError(t, err)
		assert.Equal(t, "rev-1", review.ID)
		assert.Equal(t, domain.ReviewStatusInProgress, review.Status)
		prRepo.AssertExpectations(t)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("ошибка: PR не найден", func(t *testing.T) {
		svc, prRepo, reviewRepo, _ := setupReviewService()

		prRepo.On("GetByID", mock.Anything, "pr-404").Return(nil, domain.NewNotFoundError("pull request")).Once()

		review, err := svc.Start(context.Background(), "pr-404")

		require.Error(t, err)
		assert.Nil(t, review)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		reviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("ошибка: транзакция не открылась", func(t *testing.T) {
		svc, prRepo, _, _ := setupReviewService()
		svc.transactor.(*MockTransactor).Err = domain.ErrStorageUnavailable

		review, err := svc.Start(context.Background(), "pr-1")

		require.Error(t, err)
		assert.Nil(t, review)
		assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
		prRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestReviewService_Finish(t *testing.T) {
	t.Run("сохраняет findings и записывает длительность", func(t *testing.T) {
		svc, _, reviewRepo, findingRepo := setupReviewService()
		ctx := context.Background()

		running := &domain.Review{
			ID:        "rev-1",
			Status:    domain.ReviewStatusInProgress,
			StartedAt: fixedNow.Add(-90 * time.Second),
		}
		findings := []*domain.Finding{
			{Type: domain.FindingTypeBug, Severity: domain.SeverityHigh, File: "main.go"},
		}

		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(running, nil).Once()
		reviewRepo.On("FinishRunning", mock.Anything, "rev-1", domain.ReviewStatusCompleted, int64(90000)).Return(true, nil).Once()
		findingRepo.On("SaveAll", mock.Anything, findings).Return(nil).Once()

		review, err := svc.Finish(ctx, "rev-1", domain.ReviewStatusCompleted, findings)

		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusCompleted, review.Status)
		require.NotNil(t, review.DurationMs)
		assert.Equal(t, int64(90000), *review.DurationMs)
		assert.Equal(t, "rev-1", findings[0].ReviewID)
		reviewRepo.AssertExpectations(t)
		findingRepo.AssertExpectations(t)
	})

	t.Run("завершенный review не меняется", func(t *testing.T) {
		svc, _, reviewRepo, findingRepo := setupReviewService()

		done := &domain.Review{ID: "rev-1", Status: domain.ReviewStatusFailed}
		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(done, nil).Once()

		review, err := svc.Finish(context.Background(), "rev-1", domain.ReviewStatusCompleted, nil)

		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusFailed, review.Status)
		findingRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
		reviewRepo.AssertNotCalled(t, "FinishRunning", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка: неконечный статус", func(t *testing.T) {
		svc, _, reviewRepo, _ := setupReviewService()

		review, err := svc.Finish(context.Background(), "rev-1", domain.ReviewStatusInProgress, nil)

		require.Error(t, err)
		assert.Nil(t, review)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		reviewRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("ошибка сохранения findings возвращается из транзакции", func(t *testing.T) {
		svc, _, reviewRepo, findingRepo := setupReviewService()

		running := &domain.Review{ID: "rev-1", Status: domain.ReviewStatusInProgress, StartedAt: fixedNow}
		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(running, nil).Once()
		reviewRepo.On("FinishRunning", mock.Anything, "rev-1", domain.ReviewStatusCompleted, int64(0)).Return(true, nil).Once()
		findingRepo.On("SaveAll", mock.Anything, mock.Anything).Return(domain.ErrStorageUnavailable).Once()

		review, err := svc.Finish(context.Background(), "rev-1", domain.ReviewStatusCompleted, []*domain.Finding{{}})

		require.Error(t, err)
		assert.Nil(t, review)
		assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
		assert.Equal(t, domain.ReviewStatusInProgress, running.Status)
	})

	t.Run("повтор после сбоя смены статуса сохраняет findings один раз", func(t *testing.T) {
		svc, _, reviewRepo, findingRepo := setupReviewService()

		findings := []*domain.Finding{
			{Type: domain.FindingTypeBug, Severity: domain.SeverityHigh, File: "main.go"},
			{Type: domain.FindingTypeStyle, Severity: domain.SeverityLow, File: "util.go"},
		}
		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(&domain.Review{
			ID: "rev-1", Status: domain.ReviewStatusInProgress, StartedAt: fixedNow,
		}, nil).Twice()
		reviewRepo.On("FinishRunning", mock.Anything, "rev-1", domain.ReviewStatusCompleted, int64(0)).
			Return(false, domain.ErrStorageUnavailable).Once()
		reviewRepo.On("FinishRunning", mock.Anything, "rev-1", domain.ReviewStatusCompleted, int64(0)).
			Return(true, nil).Once()
		findingRepo.On("SaveAll", mock.Anything, findings).Return(nil).Once()

		_, err := svc.Finish(context.Background(), "rev-1", domain.ReviewStatusCompleted, findings)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
		findingRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)

		review, err := svc.Finish(context.Background(), "rev-1", domain.ReviewStatusCompleted, findings)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusCompleted, review.Status)
		findingRepo.AssertNumberOfCalls(t, "SaveAll", 1)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("review завершен параллельным вызовом", func(t *testing.T) {
		svc, _, reviewRepo, findingRepo := setupReviewService()

		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(&domain.Review{
			ID: "rev-1", Status: domain.ReviewStatusInProgress, StartedAt: fixedNow,
		}, nil).Once()
		reviewRepo.On("FinishRunning", mock.Anything, "rev-1", domain.ReviewStatusCompleted, int64(0)).Return(false, nil).Once()
		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(&domain.Review{
			ID: "rev-1", Status: domain.ReviewStatusFailed,
		}, nil).Once()

		review, err := svc.Finish(context.Background(), "rev-1", domain.ReviewStatusCompleted, []*domain.Finding{{}})

		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusFailed, review.Status)
		findingRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
		reviewRepo.AssertExpectations(t)
	})
}

func TestReviewService_Stuck(t *testing.T) {
	t.Run("порог по умолчанию из конфигурации", func(t *testing.T) {
		svc, _, reviewRepo, _ := setupReviewService()
		stuck := []*domain.Review{{ID: "rev-1", Status: domain.ReviewStatusInProgress}}

		reviewRepo.On("FindStuck", mock.Anything, fixedNow.Add(-30*time.Minute)).Return(stuck, nil).Once()

		result, err := svc.Stuck(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, stuck, result)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("явный порог", func(t *testing.T) {
		svc, _, reviewRepo, _ := setupReviewService()

		reviewRepo.On("FindStuck", mock.Anything, fixedNow.Add(-2*time.Hour)).Return([]*domain.Review{}, nil).Once()

		result, err := svc.Stuck(context.Background(), 2*time.Hour)

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("ошибка: отрицательный порог", func(t *testing.T) {
		svc, _, reviewRepo, _ := setupReviewService()

		_, err := svc.Stuck(context.Background(), -time.Minute)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		reviewRepo.AssertNotCalled(t, "FindStuck", mock.Anything, mock.Anything)
	})
}

func TestReviewService_Latest(t *testing.T) {
	t.Run("нет reviews", func(t *testing.T) {
		svc, _, reviewRepo, _ := setupReviewService()

		reviewRepo.On("LatestForPullRequest", mock.Anything, "pr-1").Return(nil, false, nil).Once()

		review, ok, err := svc.Latest(context.Background(), "pr-1")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, review)
	})

	t.Run("последний review", func(t *testing.T) {
		svc, _, reviewRepo, _ := setupReviewService()
		latest := &domain.Review{ID: "rev-2", PullRequestID: "pr-1"}

		reviewRepo.On("LatestForPullRequest", mock.Anything, "pr-1").Return(latest, true, nil).Once()

		review, ok, err := svc.Latest(context.Background(), "pr-1")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, latest, review)
	})
}
