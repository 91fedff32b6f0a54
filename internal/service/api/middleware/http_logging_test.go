package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// HTTP Logger
// =============================================================================

func TestHTTPLogger_RecordsRequest(t *testing.T) {
	buf := captureLogs(t)

	e := newEcho()
	e.Use(HTTPLogger())
	e.GET("/api/v1/cache/stats", func(c echo.Context) error {
		return c.String(http.StatusOK, "stats")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats?token=secret123456&verbose=1", nil)
	req.Header.Set("User-Agent", "feed-test")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	entries := logEntries(t, buf)
	require.Len(t, entries, 1)
	entry := entries[0]

	assert.Equal(t, constants.LogMsgHTTPRequest, entry["msg"])
	assert.Equal(t, constants.ComponentMiddlewareHTTPLogger, entry["component"])
	assert.Equal(t, http.MethodGet, entry["method"])
	assert.Equal(t, "/api/v1/cache/stats", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "5", entry["bytes_out"])
	assert.Equal(t, defaultBytesIn, entry["bytes_in"])
	assert.Equal(t, "feed-test", entry["user_agent"])
	assert.NotContains(t, entry["uri"], "secret123456")
	assert.Contains(t, entry["uri"], "verbose=1")
}

func TestHTTPLogger_HandlerErrorStatus(t *testing.T) {
	buf := captureLogs(t)

	e := newEcho()
	e.Use(HTTPLogger())
	e.GET("/api/v1/products/:id", func(c echo.Context) error {
		return apperrors.New(apperrors.NotFound, "상품을 찾을 수 없습니다")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/prod_x", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var status any
	for _, entry := range logEntries(t, buf) {
		if entry["msg"] == constants.LogMsgHTTPRequest {
			status = entry["status"]
		}
	}
	assert.Equal(t, float64(http.StatusNotFound), status, "에러 응답의 실제 상태 코드가 기록되어야 합니다")
}

func TestMaskSensitiveQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"민감 파라미터 없음", "/api/v1/products/prod_1?fields=name", "/api/v1/products/prod_1?fields=name"},
		{"token 마스킹", "/health?token=secret123456", "/health?token=secr%2A%2A%2A"},
		{"짧은 값", "/health?password=abc", "/health?password=%2A%2A%2A"},
		{"쿼리 없음", "/version", "/version"},
		{"해석 불가", "%zz", "%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, maskSensitiveQueryParams(tt.uri))
		})
	}
}
