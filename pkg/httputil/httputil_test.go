package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/horizonte/storefront/pkg/errors"
	"github.com/horizonte/storefront/pkg/logger"
	"github.com/horizonte/storefront/pkg/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *ErrorResponse {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

// --- WriteJSON / WriteData ---

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusCreated, map[string]string{"id": "acai"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"acai"}}`, rec.Body.String())
}

func TestWriteNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestResponse_OmitsEmptyHalves(t *testing.T) {
	data, err := json.Marshal(Response{Data: "ok"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "error")

	data, err = json.Marshal(Response{Error: &ErrorResponse{Code: "X", Message: "y"}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "data")
	assert.NotContains(t, string(data), "request_id")
}

// --- WriteError ---

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app error", apperrors.NotFound("product", "x"), http.StatusNotFound, "NOT_FOUND"},
		{"incomplete selection", apperrors.Incomplete("size selection required"), http.StatusBadRequest, "INCOMPLETE_SELECTION"},
		{"wrapped sentinel not found", fmt.Errorf("get: %w", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"sentinel already exists", apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"sentinel invalid input", apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"sentinel unavailable", apperrors.ErrServiceUnavail, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/products/x", nil)

			WriteError(rec, req, tt.err, testLogger())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestWriteError_InternalHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, fmt.Errorf("redis: connection refused"), testLogger())

	e := decodeError(t, rec)
	assert.Equal(t, "an internal error occurred", e.Message)
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.WithCorrelationID(context.Background(), "req-42"))

	WriteError(rec, req, apperrors.InvalidInput("bad"), testLogger())

	assert.Equal(t, "req-42", decodeError(t, rec).RequestID)
}

func TestWriteError_NilFallbackLogger(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.NotPanics(t, func() { WriteError(rec, req, fmt.Errorf("boom"), nil) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- WriteValidationError ---

func TestWriteValidationError_Fields(t *testing.T) {
	type form struct {
		Name string `json:"name" validate:"required"`
	}
	verr := validator.Validate(form{})
	require.Error(t, verr)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), verr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", e.Code)
	assert.Equal(t, "is required", e.Fields["name"])
}

func TestWriteValidationError_DecodeError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), fmt.Errorf("decode request body: EOF"))

	e := decodeError(t, rec)
	assert.Equal(t, "INVALID_INPUT", e.Code)
	assert.Contains(t, e.Message, "decode request body")
}
