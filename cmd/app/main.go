package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bagdasarian/openreview-store/internal/config"
	"github.com/bagdasarian/openreview-store/internal/db"
	"github.com/bagdasarian/openreview-store/internal/handler"
	"github.com/bagdasarian/openreview-store/internal/handler/server"
	"github.com/bagdasarian/openreview-store/internal/logger"
	"github.com/bagdasarian/openreview-store/internal/repository/postgres"
	"github.com/bagdasarian/openreview-store/internal/service"
)

func main() {
	cfg := config.MustLoad()

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer logger.Sync()

	database := db.MustLoad(cfg)
	defer database.Close()

	pullRequestRepo := postgres.NewPullRequestRepository(database)
	reviewRepo := postgres.NewReviewRepository(database)
	findingRepo := postgres.NewFindingRepository(database)

	pullRequestService := service.NewPullRequestService(pullRequestRepo)
	reviewService := service.NewReviewService(reviewRepo, postgres.NewTransactor(database), cfg.Review.StuckAfter)
	findingService := service.NewFindingService(findingRepo)
	statsService := service.NewStatsService(reviewRepo, findingRepo)

	h := handler.NewHandler(pullRequestService, reviewService, findingService, statsService, database)
	srv := server.NewServer(h, cfg.Server)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
}
