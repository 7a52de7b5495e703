package service

import (
	"context"
	"time"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockPullRequestRepository struct {
	mock.Mock
}

func (m *MockPullRequestRepository) Save(ctx context.Context, pr *domain.PullRequest) error {
	args := m.Called(ctx, pr)
	return args.Error(0)
}

func (m *MockPullRequestRepository) GetByID(ctx context.Context, id string) (*domain.PullRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequest), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Save(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus, durationMs *int64) error {
	args := m.Called(ctx, id, status, durationMs)
	return args.Error(0)
}

func (m *MockReviewRepository) FinishRunning(ctx context.Context, id string, status domain.ReviewStatus, durationMs int64) (bool, error) {
	args := m.Called(ctx, id, status, durationMs)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByPullRequest(ctx context.Context, pullRequestID string) ([]*domain.Review, error) {
	args := m.Called(ctx, pullRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByStatus(ctx context.Context, status domain.ReviewStatus) ([]*domain.Review, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) LatestForPullRequest(ctx context.Context, pullRequestID string) (*domain.Review, bool, error) {
	args := m.Called(ctx, pullRequestID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Review), args.Bool(1), args.Error(2)
}

func (m *MockReviewRepository) FindCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Review, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByStatus(ctx context.Context, status domain.ReviewStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) AverageDuration(ctx context.Context) (float64, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *MockReviewRepository) FindStuck(ctx context.Context, threshold time.Time) ([]*domain.Review, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

type MockFindingRepository struct {
	mock.Mock
}

func (m *MockFindingRepository) SaveAll(ctx context.Context, findings []*domain.Finding) error {
	args := m.Called(ctx, findings)
	return args.Error(0)
}

func (m *MockFindingRepository) MarkCommented(ctx context.Context, findingID string, commentID int64) error {
	args := m.Called(ctx, findingID, commentID)
	return args.Error(0)
}

func (m *MockFindingRepository) GetByID(ctx context.Context, id string) (*domain.Finding, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Finding), args.Error(1)
}

func (m *MockFindingRepository) FindByReview(ctx context.Context, reviewID string) ([]*domain.Finding, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Finding), args.Error(1)
}

func (m *MockFindingRepository) FindByType(ctx context.Context, findingType domain.FindingType) ([]*domain.Finding, error) {
	args := m.Called(ctx, findingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Finding), args.Error(1)
}

func (m *MockFindingRepository) FindBySeverity(ctx context.Context, severity domain.SeverityLevel) ([]*domain.Finding, error) {
	args := m.Called(ctx, severity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Finding), args.Error(1)
}

func (m *MockFindingRepository) FindByFile(ctx context.Context, file string) ([]*domain.Finding, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Finding), args.Error(1)
}

func (m *MockFindingRepository) FindByReviewAndSeverity(ctx context.Context, reviewID string, severity domain.SeverityLevel) ([]*domain.Finding, error) {
	args := m.Called(ctx, reviewID, severity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Finding), args.Error(1)
}

func (m *MockFindingRepository) CountByReviewAndType(ctx context.Context, reviewID string, findingType domain.FindingType) (int64, error) {
	args := m.Called(ctx, reviewID, findingType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFindingRepository) MostCommonTypes(ctx context.Context) ([]domain.FindingTypeCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FindingTypeCount), args.Error(1)
}

func (m *MockFindingRepository) FindWithoutComment(ctx context.Context) ([]*domain.Finding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Finding), args.Error(1)
}

// MockTransactor runs fn against Tx without a database; Err short-circuits the call.
type MockTransactor struct {
	Tx    repository.Tx
	Err   error
	Calls int
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(m.Tx)
}
