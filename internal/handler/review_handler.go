package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

func (h *Handler) StartReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviewService.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainReviewToHTTP(review))
}

func (h *Handler) FinishReview(w http.ResponseWriter, r *http.Request) {
	var req FinishReviewRequest
	if err := h.decodeRequest(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	status, err := domain.ParseReviewStatus(req.Status)
	if err != nil {
		h.handleError(w, err)
		return
	}
	findings, err := httpFindingsToDomain(req.Findings)
	if err != nil {
		h.handleError(w, err)
		return
	}

	review, err := h.reviewService.Finish(r.Context(), chi.URLParam(r, "id"), status, findings)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainReviewToHTTP(review))
}

func (h *Handler) ListPRReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListByPullRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainReviewsToHTTP(reviews))
}

func (h *Handler) GetLatestReview(w http.ResponseWriter, r *http.Request) {
	review, ok, err := h.reviewService.Latest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	if !ok {
		h.handleError(w, domain.NewNotFoundError("review for pull request "+chi.URLParam(r, "id")))
		return
	}

	writeJSON(w, http.StatusOK, domainReviewToHTTP(review))
}

// ListReviews filters either by ?status= or by the ?from=&to= creation window.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		reviews []*domain.Review
		err     error
	)
	switch {
	case query.Get("status") != "":
		var status domain.ReviewStatus
		status, err = domain.ParseReviewStatus(query.Get("status"))
		if err == nil {
			reviews, err = h.reviewService.ListByStatus(r.Context(), status)
		}
	case query.Get("from") != "" || query.Get("to") != "":
		var start, end time.Time
		start, end, err = parseWindow(query.Get("from"), query.Get("to"))
		if err == nil {
			reviews, err = h.reviewService.ListCreatedBetween(r.Context(), start, end)
		}
	default:
		err = domain.NewInvalidArgumentError("either status or from/to must be given")
	}
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainReviewsToHTTP(reviews))
}

func (h *Handler) ListStuckReviews(w http.ResponseWriter, r *http.Request) {
	var olderThan time.Duration
	if raw := r.URL.Query().Get("older_than"); raw != "" {
		var err error
		olderThan, err = time.ParseDuration(raw)
		if err != nil {
			h.handleError(w, domain.NewInvalidArgumentError("invalid older_than %q: %v", raw, err))
			return
		}
	}

	reviews, err := h.reviewService.Stuck(r.Context(), olderThan)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainReviewsToHTTP(reviews))
}

func parseWindow(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewInvalidArgumentError("invalid from %q, expected RFC3339", from)
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewInvalidArgumentError("invalid to %q, expected RFC3339", to)
	}
	return start, end, nil
}
