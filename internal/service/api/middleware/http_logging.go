package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/darkkaiser/feed-server/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// defaultBytesIn Content-Length 헤더가 없을 때(Chunked 전송 등) bytes_in 필드에 기록되는 값입니다.
const defaultBytesIn = "0"

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 기록되는 정보:
//   - 요청: IP, 메서드, URI, User-Agent, Content-Length
//   - 응답: 상태 코드, 응답 크기, Request ID
//   - 성능: 처리 시간 (마이크로초 및 사람이 읽기 쉬운 형식)
//
// 핸들러가 반환한 에러는 이 미들웨어에서 c.Error로 처리하므로, 기록되는 상태 코드는 실제 응답 코드와 같습니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			// 패닉이 상위로 전파되는 경우에도 로그가 남도록 defer로 기록합니다.
			defer func() {
				latency := time.Since(start)

				path := req.URL.Path
				if path == "" {
					path = "/"
				}

				bytesIn := req.Header.Get(echo.HeaderContentLength)
				if bytesIn == "" {
					bytesIn = defaultBytesIn
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewareHTTPLogger, applog.Fields{
					"method":   req.Method,
					"path":     path,
					"uri":      maskSensitiveQueryParams(req.RequestURI),
					"host":     req.Host,
					"protocol": req.Proto,

					"remote_ip":  c.RealIP(),
					"user_agent": req.UserAgent(),
					"referer":    req.Referer(),

					"status":    res.Status,
					"bytes_in":  bytesIn,
					"bytes_out": strconv.FormatInt(res.Size, 10),

					"latency":       strconv.FormatInt(latency.Microseconds(), 10),
					"latency_human": latency.String(),

					"request_id": res.Header().Get(echo.HeaderXRequestID),
				}).Info(constants.LogMsgHTTPRequest)
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}

// maskSensitiveQueryParams URI에 포함된 민감한 쿼리 파라미터 값을 가립니다.
// URI 해석에 실패하면 원본을 그대로 반환합니다.
//
//	입력: "/api/v1/cache/stats?token=secret123456&verbose=1"
//	출력: "/api/v1/cache/stats?token=secr%2A%2A%2A&verbose=1"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, strutil.MaskSensitiveData(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
