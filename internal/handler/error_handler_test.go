package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	h := &Handler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"некорректный аргумент", domain.NewInvalidArgumentError("bad"), http.StatusBadRequest, domain.CodeInvalidArgument},
		{"не найдено", domain.NewNotFoundError("finding"), http.StatusNotFound, domain.CodeNotFound},
		{"уже опубликован", domain.ErrAlreadyCommented, http.StatusConflict, domain.CodeAlreadyCommented},
		{"хранилище недоступно", domain.Wrap(domain.ErrStorageUnavailable, errors.New("reset")), http.StatusServiceUnavailable, domain.CodeStorageUnavailable},
		{"поврежденные данные", domain.NewDataCorruptionError("bad status"), http.StatusInternalServerError, domain.CodeDataCorruption},
		{"отмена запроса", domain.Wrap(domain.ErrCancelled, errors.New("context canceled")), statusClientClosedRequest, domain.CodeCancelled},
		{"обернутая доменная ошибка", fmt.Errorf("list: %w", domain.ErrNotFound), http.StatusNotFound, domain.CodeNotFound},
		{"неизвестная ошибка", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			h.handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHttpFindingsToDomain(t *testing.T) {
	t.Run("валидные findings", func(t *testing.T) {
		findings, err := httpFindingsToDomain([]FindingRequest{
			{Type: "BUG", Severity: "HIGH", File: "a.go", Line: 3, Message: "nil deref"},
		})

		require.NoError(t, err)
		require.Len(t, findings, 1)
		assert.Equal(t, domain.FindingTypeBug, findings[0].Type)
		assert.Equal(t, domain.SeverityHigh, findings[0].Severity)
	})

	t.Run("неизвестная severity", func(t *testing.T) {
		_, err := httpFindingsToDomain([]FindingRequest{{Type: "BUG", Severity: "BLOCKER", File: "a.go"}})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	})
}
