package service

import (
	"context"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

type StatsService interface {
	Summary(ctx context.Context) (*domain.Stats, error)
}
