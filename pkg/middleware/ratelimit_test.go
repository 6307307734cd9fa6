package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimited(t *testing.T, rps float64, burst int) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	var buf bytes.Buffer
	return RateLimit(ctx, rps, burst, newBufferLogger(&buf))(okHandler)
}

func get(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/panel", nil)
	req.RemoteAddr = remote
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimit_WithinBurst(t *testing.T) {
	h := newRateLimited(t, 1, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(h, "192.168.1.1:1234").Code, "request %d", i+1)
	}
}

func TestRateLimit_ExceedsBurst(t *testing.T) {
	h := newRateLimited(t, 0.001, 2)

	require.Equal(t, http.StatusOK, get(h, "10.0.0.1:1").Code)
	require.Equal(t, http.StatusOK, get(h, "10.0.0.1:2").Code)

	rr := get(h, "10.0.0.1:3")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "RATE_LIMITED")
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestRateLimit_PerIP(t *testing.T) {
	h := newRateLimited(t, 0.001, 1)

	assert.Equal(t, http.StatusOK, get(h, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(h, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusOK, get(h, "10.0.0.2:1").Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"remote addr", "", "", "1.2.3.4:5678", "1.2.3.4"},
		{"forwarded chain", "9.9.9.9, 10.0.0.1", "", "1.2.3.4:5678", "9.9.9.9"},
		{"forwarded garbage falls to real ip", "nonsense", "8.8.8.8", "1.2.3.4:5678", "8.8.8.8"},
		{"remote without port", "", "", "1.2.3.4", "1.2.3.4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				req.Header.Set("X-Real-IP", tc.xri)
			}
			assert.Equal(t, tc.want, clientIP(req))
		})
	}
}

func TestVisitorStore_CleanupEvictsIdle(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newVisitorStore(1, 1, time.Minute)
	s.now = func() time.Time { return now }

	s.get("a")
	now = now.Add(30 * time.Second)
	s.get("b")
	now = now.Add(45 * time.Second)

	s.cleanup()
	assert.Equal(t, 1, s.size())
}
