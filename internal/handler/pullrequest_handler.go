package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

func (h *Handler) decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewInvalidArgumentError("request body is empty")
		}
		// truncated JSON surfaces as io.ErrUnexpectedEOF, not as *json.SyntaxError
		return domain.NewInvalidArgumentError("malformed request body: %v", err)
	}
	return h.validate.Struct(dst)
}

func (h *Handler) RegisterPR(w http.ResponseWriter, r *http.Request) {
	var req RegisterPRRequest
	if err := h.decodeRequest(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	pr, err := h.pullRequestService.Register(r.Context(), httpPRToDomain(req))
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainPRToHTTP(pr))
}

func (h *Handler) GetPR(w http.ResponseWriter, r *http.Request) {
	pr, err := h.pullRequestService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainPRToHTTP(pr))
}
