// Package constants API 서버 전반에서 공유하는 컴포넌트 이름, 기본값, 메시지를 정의합니다.
package constants

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	ComponentService      = "api.service"
	ComponentHandler      = "api.handler"
	ComponentErrorHandler = "api.error_handler"

	ComponentMiddlewareRateLimit     = "api.middleware.rate_limit"
	ComponentMiddlewarePanicRecovery = "api.middleware.panic_recovery"
	ComponentMiddlewareContentType   = "api.middleware.content_type"
	ComponentMiddlewareHTTPLogger    = "api.middleware.http_logger"
)

// 헬스체크 응답에서 사용하는 상태 값과 의존성 이름입니다.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	DependencyCache = "cache"
)

// 경로 파라미터 이름
const (
	ParamFeedID            = "feedId"
	ParamProductID         = "id"
	ParamMerchantID        = "merchantId"
	ParamMerchantProductID = "merchantProductId"
)

// SensitiveQueryParams 요청 로그에 남길 때 값을 가려야 하는 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"password",
	"token",
	"secret",
}
