package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/logger"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return logger.NewWithWriter("test", "info", logger.FormatJSON, buf)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusTeapot, Response{Data: "hello"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "hello", decode(t, rec).Data)
}

func TestResponse_OmitsEmptyMembers(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: "ok"})

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	_, hasError := raw["error"]
	assert.False(t, hasError, "error field should be omitted when nil")

	rec = httptest.NewRecorder()
	WriteJSON(rec, http.StatusBadRequest, Response{Error: &ErrorResponse{Code: "ERR", Message: "msg"}})

	raw = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	_, hasData := raw["data"]
	assert.False(t, hasData, "data field should be omitted when nil")
}

func TestWriteError_AppError(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/panel?theme=solarized", nil)

	WriteError(rec, req, apperrors.InvalidInput("unknown theme"), testLogger(&buf))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.Equal(t, "unknown theme", resp.Error.Message)
	assert.Zero(t, buf.Len(), "client errors are not logged")
}

func TestWriteError_UpstreamAppErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/panel", nil)

	WriteError(rec, req, apperrors.Upstream("catalog", "bad gateway", nil), testLogger(&buf))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_ERROR", decode(t, rec).Error.Code)
	assert.Contains(t, buf.String(), "request failed")
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.WithCorrelationID(req.Context(), "corr-1"))

	WriteError(rec, req, apperrors.InvalidInput("bad"), testLogger(&buf))

	assert.Equal(t, "corr-1", decode(t, rec).Error.RequestID)
}

func TestWriteError_Sentinels(t *testing.T) {
	tests := []struct {
		err      error
		wantCode string
		status   int
	}{
		{apperrors.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{apperrors.ErrInvalidInput, "INVALID_INPUT", http.StatusBadRequest},
		{fmt.Errorf("fetch: %w", apperrors.ErrUpstream), "UPSTREAM_ERROR", http.StatusBadGateway},
		{apperrors.ErrServiceUnavail, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
		{fmt.Errorf("something unexpected"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			var buf bytes.Buffer
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			WriteError(rec, req, tt.err, testLogger(&buf))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec).Error.Code)
		})
	}
}

func TestWriteError_PrefersContextLogger(t *testing.T) {
	var fallbackBuf, ctxBuf bytes.Buffer
	ctxLogger := logger.NewWithWriter("ctx", "info", logger.FormatJSON, &ctxBuf)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.NewContext(req.Context(), ctxLogger))

	WriteError(rec, req, fmt.Errorf("boom"), testLogger(&fallbackBuf))

	assert.Zero(t, fallbackBuf.Len())
	assert.Contains(t, ctxBuf.String(), "boom")
}
