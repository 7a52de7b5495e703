package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

func (h *Handler) ListReviewFindings(w http.ResponseWriter, r *http.Request) {
	var severity *domain.SeverityLevel
	if raw := r.URL.Query().Get("severity"); raw != "" {
		level, err := domain.ParseSeverityLevel(raw)
		if err != nil {
			h.handleError(w, err)
			return
		}
		severity = &level
	}

	findings, err := h.findingService.ListByReview(r.Context(), chi.URLParam(r, "id"), severity)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainFindingsToHTTP(findings))
}

func (h *Handler) CountReviewFindings(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")
	findingType, err := domain.ParseFindingType(r.URL.Query().Get("type"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	count, err := h.findingService.CountByReviewAndType(r.Context(), reviewID, findingType)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FindingCountResponse{
		ReviewID: reviewID,
		Type:     string(findingType),
		Count:    count,
	})
}

// ListFindings accepts exactly one of ?type=, ?severity= or ?file=.
func (h *Handler) ListFindings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	given := 0
	for _, key := range []string{"type", "severity", "file"} {
		if query.Has(key) {
			given++
		}
	}
	if given != 1 {
		h.handleError(w, domain.NewInvalidArgumentError("exactly one of type, severity or file must be given"))
		return
	}

	var (
		findings []*domain.Finding
		err      error
	)
	switch {
	case query.Has("type"):
		var findingType domain.FindingType
		findingType, err = domain.ParseFindingType(query.Get("type"))
		if err == nil {
			findings, err = h.findingService.ListByType(r.Context(), findingType)
		}
	case query.Has("severity"):
		var severity domain.SeverityLevel
		severity, err = domain.ParseSeverityLevel(query.Get("severity"))
		if err == nil {
			findings, err = h.findingService.ListBySeverity(r.Context(), severity)
		}
	default:
		findings, err = h.findingService.ListByFile(r.Context(), query.Get("file"))
	}
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainFindingsToHTTP(findings))
}

func (h *Handler) ListUnpostedFindings(w http.ResponseWriter, r *http.Request) {
	findings, err := h.findingService.ListUnposted(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainFindingsToHTTP(findings))
}

func (h *Handler) MarkFindingCommented(w http.ResponseWriter, r *http.Request) {
	var req MarkCommentedRequest
	if err := h.decodeRequest(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	finding, err := h.findingService.MarkCommented(r.Context(), chi.URLParam(r, "id"), req.CommentID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainFindingToHTTP(finding))
}
