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

func TestPullRequestService_Register(t *testing.T) {
	t.Run("успешная регистрация PR", func(t *testing.T) {
		prRepo := new(MockPullRequestRepository)
		svc := NewPullRequestService(prRepo)
		pr := &domain.PullRequest{RepoFullName: " acme/api ", Number: 42, Title: "Add cache"}

		prRepo.On("Save", mock.Anything, pr).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.PullRequest).ID = "pr-1"
		}).Return(nil).Once()

		result, err := svc.Register(context.Background(), pr)

		require.NoError(t, err)
		assert.Equal(t, "pr-1", result.ID)
		assert.Equal(t, "acme/api", result.RepoFullName)
		prRepo.AssertExpectations(t)
	})

	t.Run("ошибка: имя репозитория без владельца", func(t *testing.T) {
		prRepo := new(MockPullRequestRepository)
		svc := NewPullRequestService(prRepo)

		result, err := svc.Register(context.Background(), &domain.PullRequest{RepoFullName: "api", Number: 1})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		prRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
