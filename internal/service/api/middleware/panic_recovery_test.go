package middleware

import (
	"errors"
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
// Panic Recovery
// =============================================================================

func TestNewErrPanicRecovered(t *testing.T) {
	t.Parallel()

	cause := errors.New("cache backend closed")
	err := NewErrPanicRecovered(cause)
	assert.True(t, apperrors.Is(err, apperrors.Internal))
	assert.ErrorIs(t, err, cause)

	err = NewErrPanicRecovered(42)
	assert.True(t, apperrors.Is(err, apperrors.Internal))
	assert.Contains(t, err.Error(), "42")
}

func TestPanicRecovery(t *testing.T) {
	buf := captureLogs(t)

	tests := []struct {
		name         string
		panicPayload any
		wantError    string
	}{
		{"문자열 패닉", "정규화기 상태 불일치", "정규화기 상태 불일치"},
		{"에러 패닉", errors.New("nil map"), "nil map"},
		{"정수 패닉", 12345, "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			e := newEcho()
			e.Use(PanicRecovery())
			e.GET("/panic", func(c echo.Context) error {
				panic(tt.panicPayload)
			})

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			req.Header.Set(echo.HeaderXRequestID, "req-1")
			rec := httptest.NewRecorder()

			require.NotPanics(t, func() { e.ServeHTTP(rec, req) })
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), constants.ErrMsgInternalServer)

			var recovered map[string]any
			for _, entry := range logEntries(t, buf) {
				if entry["msg"] == constants.LogMsgPanicRecovered {
					recovered = entry
				}
			}
			require.NotNil(t, recovered, "패닉 복구 로그가 기록되어야 합니다")
			assert.Equal(t, constants.ComponentMiddlewarePanicRecovery, recovered["component"])
			assert.Contains(t, recovered["error"], tt.wantError)
			assert.NotEmpty(t, recovered["stack"])
			assert.Equal(t, "/panic", recovered["path"])
		})
	}
}

func TestPanicRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	e := newEcho()
	e.Use(PanicRecovery())
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestPanicRecovery_AbortHandlerPropagates(t *testing.T) {
	t.Parallel()

	e := newEcho()
	e.Use(PanicRecovery())
	e.GET("/abort", func(c echo.Context) error { panic(http.ErrAbortHandler) })

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	})
}
