package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/feed-server/internal/config"
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	"github.com/darkkaiser/feed-server/internal/service/api/handler"
	"github.com/darkkaiser/feed-server/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/feed-server/internal/service/api/middleware"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (미설정 시 60초)
	RequestTimeout time.Duration

	// BodyLimit 요청 본문의 최대 크기 (예: "16M", 미설정 시 16MB)
	// 피드 한 번 분량의 행을 통째로 받기 때문에 일반적인 API보다 크게 잡습니다.
	BodyLimit string

	// RateLimit IP 기반 요청 제한 설정 (Enabled가 false이면 적용하지 않음)
	RateLimit config.RateLimitConfig
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery: 핸들러와 이후 미들웨어의 panic 복구
//  2. RequestID: 요청마다 X-Request-ID 부여 (로그에 request_id 포함)
//  3. Server 헤더 제거
//  4. HTTPLogger: 요청/응답 구조화 로깅 (429, 503 응답도 기록)
//  5. RateLimit: IP별 초당 요청 수 제한 (설정 시)
//  6. BodyLimit: 요청 본문 크기 제한 (초과 시 413)
//  7. Timeout: 요청 처리 시간 제한 (초과 시 503)
//  8. CORS
//  9. Secure: 보안 헤더 추가
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 등록해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그도 애플리케이션 로거로 출력합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Validator = handler.RequestValidator{}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = constants.DefaultBodyLimit
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	if cfg.RateLimit.Enabled {
		e.Use(appmiddleware.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))
	}
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.Secure())

	return e
}
