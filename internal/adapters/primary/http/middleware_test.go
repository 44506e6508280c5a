package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := newRateLimiter()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.isAllowed("10.0.0.1", 5, time.Minute))
	}
	assert.False(t, rl.isAllowed("10.0.0.1", 5, time.Minute))

	// A different client has its own budget
	assert.True(t, rl.isAllowed("10.0.0.2", 5, time.Minute))
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := newRateLimiter()

	assert.True(t, rl.isAllowed("10.0.0.1", 1, 10*time.Millisecond))
	assert.False(t, rl.isAllowed("10.0.0.1", 1, 10*time.Millisecond))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.isAllowed("10.0.0.1", 1, 10*time.Millisecond))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr",
			remoteAddr: "192.168.1.5:51000",
			want:       "192.168.1.5",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "invalid forwarded header falls through",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := createRecoveryMiddleware(panicky, NewHTTPLogger("test"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingMiddlewareCapturesStatus(t *testing.T) {
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	handler := createLoggingMiddleware(notFound, NewHTTPLogger("test"))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
