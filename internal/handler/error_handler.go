package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/logger"
)

// statusClientClosedRequest is the nginx convention for a request the client gave up on.
const statusClientClosedRequest = 499

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		err = domain.NewInvalidArgumentError("%s", validationErrs.Error())
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		statusCode := getStatusCode(domainErr.Code)
		if statusCode >= http.StatusInternalServerError {
			logger.Error("request failed", zap.String("code", domainErr.Code), zap.Error(err))
		}
		writeJSON(w, statusCode, ErrorResponse{
			Error: ErrorDetail{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			},
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	})
}

func getStatusCode(errorCode string) int {
	switch errorCode {
	case domain.CodeInvalidArgument:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeAlreadyCommented:
		return http.StatusConflict
	case domain.CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case domain.CodeCancelled:
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}
