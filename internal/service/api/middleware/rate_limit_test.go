package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// =============================================================================
// Rate Limiting
// =============================================================================

func TestNewIPRateLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(2.5, 5)

	assert.NotNil(t, limiter.limiters)
	assert.Equal(t, rate.Limit(2.5), limiter.rate)
	assert.Equal(t, 5, limiter.burst)
	assert.Equal(t, maxIPRateLimiters, limiter.maxIPs)
	assert.Empty(t, limiter.limiters)
}

func TestRateLimit_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		perSecond   float64
		burst       int
		expectPanic bool
	}{
		{"정상값", 10, 20, false},
		{"소수 RPS", 0.5, 1, false},
		{"RPS 0", 0, 20, true},
		{"RPS 음수", -1, 20, true},
		{"Burst 0", 10, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.expectPanic {
				assert.Panics(t, func() { RateLimit(tt.perSecond, tt.burst) })
			} else {
				assert.NotPanics(t, func() { RateLimit(tt.perSecond, tt.burst) })
			}
		})
	}
}

func TestIPRateLimiter_SameIPReturnsSameLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(1, 1)

	var wg sync.WaitGroup
	got := make([]*rate.Limiter, 20)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = limiter.getLimiter("10.0.0.1")
		}(i)
	}
	wg.Wait()

	for _, l := range got {
		assert.Same(t, got[0], l)
	}
	assert.Len(t, limiter.limiters, 1)
}

func TestIPRateLimiter_Eviction(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(1, 1)
	limiter.maxIPs = 3

	for i := 0; i < 10; i++ {
		limiter.getLimiter(fmt.Sprintf("10.0.0.%d", i))
	}

	assert.Len(t, limiter.limiters, 3, "최대 개수를 넘지 않아야 합니다")
	_, exists := limiter.limiters["10.0.0.9"]
	assert.True(t, exists, "가장 최근 IP는 항상 남아 있어야 합니다")
}

func TestRateLimit_Middleware(t *testing.T) {
	t.Parallel()

	e := newEcho()
	e.Use(RateLimit(1, 2))
	e.GET("/api/v1/cache/stats", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
		req.RemoteAddr = ip + ":12345"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, do("192.0.2.1").Code)
	require.Equal(t, http.StatusOK, do("192.0.2.1").Code)

	blocked := do("192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, retryAfterSeconds, blocked.Header().Get(retryAfterHeader))

	assert.Equal(t, http.StatusOK, do("192.0.2.2").Code, "다른 IP는 독립적으로 제한됩니다")
}
