package service

import (
	"context"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

type PullRequestService interface {
	Register(ctx context.Context, pr *domain.PullRequest) (*domain.PullRequest, error)
	Get(ctx context.Context, id string) (*domain.PullRequest, error)
}
