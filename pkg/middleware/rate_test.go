package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rateLimited(max int, window time.Duration) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return RateLimit(max, window)(ok)
}

func hit(h http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitEnforcesBudget(t *testing.T) {
	h := rateLimited(2, time.Minute)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111", ""))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111", ""))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1111", ""))
}

func TestRateLimitCountsClientsSeparately(t *testing.T) {
	h := rateLimited(1, time.Minute)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111", ""))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:2222", ""))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1111", ""))
}

func TestRateLimitUsesFirstForwardedHop(t *testing.T) {
	h := rateLimited(1, time.Minute)

	// Same originating client through two proxy peers shares one bucket.
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111", "203.0.113.5, 10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.9:1111", "203.0.113.5, 10.0.0.9"))
}

func TestRateLimitWindowResets(t *testing.T) {
	h := rateLimited(1, 50*time.Millisecond)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111", ""))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1111", ""))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1111", ""))
}

func TestRateLimitInstancesAreIndependent(t *testing.T) {
	coarse := rateLimited(5, time.Minute)
	strict := rateLimited(1, time.Minute)

	assert.Equal(t, http.StatusOK, hit(strict, "10.0.0.1:1111", ""))
	assert.Equal(t, http.StatusTooManyRequests, hit(strict, "10.0.0.1:1111", ""))

	// The coarse limiter never saw those requests.
	assert.Equal(t, http.StatusOK, hit(coarse, "10.0.0.1:1111", ""))
}
