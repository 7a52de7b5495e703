package service

import (
	"context"
	"strings"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/repository"
)

type pullRequestService struct {
	pullRequestRepo repository.PullRequestRepository
}

// NewPullRequestService создает новый экземпляр PullRequestService
func NewPullRequestService(pullRequestRepo repository.PullRequestRepository) PullRequestService {
	return &pullRequestService{pullRequestRepo: pullRequestRepo}
}

// Register сохраняет PR; повторная регистрация обновляет title и head sha
func (s *pullRequestService) Register(ctx context.Context, pr *domain.PullRequest) (*domain.PullRequest, error) {
	pr.RepoFullName = strings.TrimSpace(pr.RepoFullName)
	if !strings.Contains(pr.RepoFullName, "/") {
		return nil, domain.NewInvalidArgumentError("repository name must look like owner/name, got %q", pr.RepoFullName)
	}

	if err := s.pullRequestRepo.Save(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *pullRequestService) Get(ctx context.Context, id string) (*domain.PullRequest, error) {
	return s.pullRequestRepo.GetByID(ctx, id)
}
