package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bagdasarian/openreview-store/internal/handler"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *handler.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", h.Info)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/pullRequests", func(r chi.Router) {
		r.Post("/", h.RegisterPR)
		r.Get("/{id}", h.GetPR)
		r.Get("/{id}/reviews", h.ListPRReviews)
		r.Post("/{id}/reviews", h.StartReview)
		r.Get("/{id}/reviews/latest", h.GetLatestReview)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.ListReviews)
		r.Get("/stuck", h.ListStuckReviews)
		r.Post("/{id}/finish", h.FinishReview)
		r.Get("/{id}/findings", h.ListReviewFindings)
		r.Get("/{id}/findings/count", h.CountReviewFindings)
	})

	r.Route("/findings", func(r chi.Router) {
		r.Get("/", h.ListFindings)
		r.Get("/unposted", h.ListUnpostedFindings)
		r.Post("/{id}/comment", h.MarkFindingCommented)
	})

	r.Get("/stats", h.GetStats)

	return r
}
