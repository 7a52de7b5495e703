package service

import (
	"context"
	"time"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/logger"
	"github.com/bagdasarian/openreview-store/internal/repository"
	"go.uber.org/zap"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	transactor repository.Transactor
	stuckAfter time.Duration
	now        func() time.Time
}

// NewReviewService создает ReviewService; stuckAfter используется, если порог не передан явно.
// Изменения review и его findings выполняются через transactor.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	transactor repository.Transactor,
	stuckAfter time.Duration,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		transactor: transactor,
		stuckAfter: stuckAfter,
		now:        time.Now,
	}
}

// Start создает review в статусе IN_PROGRESS для существующего PR
func (s *reviewService) Start(ctx context.Context, pullRequestID string) (*domain.Review, error) {
	now := s.now().UTC()
	review := &domain.Review{
		PullRequestID: pullRequestID,
		Status:        domain.ReviewStatusInProgress,
		CreatedAt:     now,
		StartedAt:     now,
	}

	err := s.transactor.WithinTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.PullRequests.GetByID(ctx, pullRequestID); err != nil {
			return err
		}
		return tx.Reviews.Save(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("review started", zap.String("review_id", review.ID), zap.String("pull_request_id", pullRequestID))
	return review, nil
}

// Finish в одной транзакции переводит review в конечный статус и сохраняет findings.
// Если хотя бы один шаг не удался, не меняется ничего, и вызов можно повторить.
// Повторный вызов для уже завершенного review ничего не меняет.
func (s *reviewService) Finish(ctx context.Context, reviewID string, status domain.ReviewStatus, findings []*domain.Finding) (*domain.Review, error) {
	if !status.IsTerminal() {
		return nil, domain.NewInvalidArgumentError("review can only finish as COMPLETED, FAILED or CANCELLED, got %q", status)
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.Status.IsTerminal() {
		return review, nil
	}

	for _, f := range findings {
		if f != nil {
			f.ReviewID = reviewID
		}
	}

	durationMs := s.now().Sub(review.StartedAt).Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}

	finished := false
	err = s.transactor.WithinTx(ctx, func(tx repository.Tx) error {
		ok, err := tx.Reviews.FinishRunning(ctx, reviewID, status, durationMs)
		if err != nil || !ok {
			return err
		}
		if err := tx.Findings.SaveAll(ctx, findings); err != nil {
			return err
		}
		finished = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	// другой вызов успел завершить review между чтением и транзакцией
	if !finished {
		return s.reviewRepo.GetByID(ctx, reviewID)
	}

	review.Status = status
	review.DurationMs = &durationMs

	logger.Info("review finished",
		zap.String("review_id", reviewID),
		zap.String("status", status.String()),
		zap.Int("findings", len(findings)),
		zap.Int64("duration_ms", durationMs),
	)
	return review, nil
}

func (s *reviewService) ListByPullRequest(ctx context.Context, pullRequestID string) ([]*domain.Review, error) {
	return s.reviewRepo.FindByPullRequest(ctx, pullRequestID)
}

func (s *reviewService) Latest(ctx context.Context, pullRequestID string) (*domain.Review, bool, error) {
	return s.reviewRepo.LatestForPullRequest(ctx, pullRequestID)
}

func (s *reviewService) ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]*domain.Review, error) {
	return s.reviewRepo.FindByStatus(ctx, status)
}

func (s *reviewService) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Review, error) {
	return s.reviewRepo.FindCreatedBetween(ctx, start, end)
}

// Stuck возвращает reviews, которые находятся в IN_PROGRESS дольше olderThan
func (s *reviewService) Stuck(ctx context.Context, olderThan time.Duration) ([]*domain.Review, error) {
	if olderThan < 0 {
		return nil, domain.NewInvalidArgumentError("stuck age must not be negative, got %s", olderThan)
	}
	if olderThan == 0 {
		olderThan = s.stuckAfter
	}

	threshold := s.now().Add(-olderThan)
	return s.reviewRepo.FindStuck(ctx, threshold)
}
