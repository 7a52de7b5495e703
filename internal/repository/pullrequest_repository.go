package repository

import (
	"context"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

type PullRequestRepository interface {
	Save(ctx context.Context, pr *domain.PullRequest) error
	GetByID(ctx context.Context, id string) (*domain.PullRequest, error)
}
