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

func TestFindingService_ListByReview(t *testing.T) {
	t.Run("без фильтра по severity", func(t *testing.T) {
		findingRepo := new(MockFindingRepository)
		svc := NewFindingService(findingRepo)
		findings := []*domain.Finding{{ID: "f1", ReviewID: "rev-1"}}

		findingRepo.On("FindByReview", mock.Anything, "rev-1").Return(findings, nil).Once()

		result, err := svc.ListByReview(context.Background(), "rev-1", nil)

		require.NoError(t, err)
		assert.Equal(t, findings, result)
		findingRepo.AssertExpectations(t)
		findingRepo.AssertNotCalled(t, "FindByReviewAndSeverity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("с фильтром по severity", func(t *testing.T) {
		findingRepo := new(MockFindingRepository)
		svc := NewFindingService(findingRepo)
		severity := domain.SeverityHigh

		findingRepo.On("FindByReviewAndSeverity", mock.Anything, "rev-1", domain.SeverityHigh).
			Return([]*domain.Finding{}, nil).Once()

		result, err := svc.ListByReview(context.Background(), "rev-1", &severity)

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		findingRepo.AssertExpectations(t)
	})
}

func TestFindingService_MarkCommented(t *testing.T) {
	t.Run("успешная публикация", func(t *testing.T) {
		findingRepo := new(MockFindingRepository)
		svc := NewFindingService(findingRepo)
		commentID := int64(987654321)

		findingRepo.On("MarkCommented", mock.Anything, "f1", commentID).Return(nil).Once()
		findingRepo.On("GetByID", mock.Anything, "f1").
			Return(&domain.Finding{ID: "f1", CommentID: &commentID}, nil).Once()

		finding, err := svc.MarkCommented(context.Background(), "f1", commentID)

		require.NoError(t, err)
		assert.True(t, finding.IsPublished())
		assert.Equal(t, commentID, *finding.CommentID)
		findingRepo.AssertExpectations(t)
	})

	t.Run("ошибка: комментарий уже опубликован", func(t *testing.T) {
		findingRepo := new(MockFindingRepository)
		svc := NewFindingService(findingRepo)

		findingRepo.On("MarkCommented", mock.Anything, "f1", int64(2)).Return(domain.ErrAlreadyCommented).Once()

		finding, err := svc.MarkCommented(context.Background(), "f1", 2)

		require.Error(t, err)
		assert.Nil(t, finding)
		assert.True(t, errors.Is(err, domain.ErrAlreadyCommented))
		findingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestFindingService_Passthrough(t *testing.T) {
	ctx := context.Background()
	findingRepo := new(MockFindingRepository)
	svc := NewFindingService(findingRepo)
	empty := []*domain.Finding{}

	findingRepo.On("FindByType", mock.Anything, domain.FindingTypeSecurity).Return(empty, nil).Once()
	findingRepo.On("FindBySeverity", mock.Anything, domain.SeverityLow).Return(empty, nil).Once()
	findingRepo.On("FindByFile", mock.Anything, "cmd/app/main.go").Return(empty, nil).Once()
	findingRepo.On("FindWithoutComment", mock.Anything).Return(empty, nil).Once()
	findingRepo.On("CountByReviewAndType", mock.Anything, "rev-1", domain.FindingTypeBug).Return(int64(3), nil).Once()

	_, err := svc.ListByType(ctx, domain.FindingTypeSecurity)
	require.NoError(t, err)
	_, err = svc.ListBySeverity(ctx, domain.SeverityLow)
	require.NoError(t, err)
	_, err = svc.ListByFile(ctx, "cmd/app/main.go")
	require.NoError(t, err)
	_, err = svc.ListUnposted(ctx)
	require.NoError(t, err)

	count, err := svc.CountByReviewAndType(ctx, "rev-1", domain.FindingTypeBug)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	findingRepo.AssertExpectations(t)
}
