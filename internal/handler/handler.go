package handler

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/bagdasarian/openreview-store/internal/service"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	pullRequestService service.PullRequestService
	reviewService      service.ReviewService
	findingService     service.FindingService
	statsService       service.StatsService
	db                 Pinger
	validate           *validator.Validate
}

func NewHandler(
	pullRequestService service.PullRequestService,
	reviewService service.ReviewService,
	findingService service.FindingService,
	statsService service.StatsService,
	db Pinger,
) *Handler {
	return &Handler{
		pullRequestService: pullRequestService,
		reviewService:      reviewService,
		findingService:     findingService,
		statsService:       statsService,
		db:                 db,
		validate:           validator.New(),
	}
}
