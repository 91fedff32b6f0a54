package middleware

import (
	"net/http"
	"runtime"

	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 panic을 복구하고 스택 트레이스와 함께 기록하는 미들웨어를 반환합니다.
// 복구된 panic은 내부 오류로 변환되어 전역 에러 핸들러로 전달됩니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// http.ErrAbortHandler는 net/http가 연결을 끊기 위해 사용하므로 그대로 전파합니다.
				if r == http.ErrAbortHandler {
					panic(r)
				}

				err = NewErrPanicRecovered(r)

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error":  err,
					"stack":  string(stack[:length]),
					"path":   c.Request().URL.Path,
					"method": c.Request().Method,
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)
			}()

			return next(c)
		}
	}
}
