package constants

// 클라이언트에게 반환되는 표준 에러 메시지입니다.
const (
	ErrMsgBadRequest           = "잘못된 요청입니다."
	ErrMsgNotFound             = "요청한 리소스를 찾을 수 없습니다."
	ErrMsgInternalServer       = "내부 서버 오류가 발생했습니다."
	ErrMsgUnsupportedMediaType = "지원하지 않는 Content-Type 형식입니다. application/json을 사용해주세요."
)

// 서비스 생명주기 로그 메시지
const (
	LogMsgServiceStarting       = "API 서비스 시작 진입: HTTP 서버 초기화 프로세스를 시작합니다"
	LogMsgServiceStarted        = "API 서비스 시작 완료: HTTP 서버가 요청을 처리할 준비가 되었습니다"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 실행 중입니다 (중복 호출)"
	LogMsgServiceDisabled       = "API 서비스가 비활성화되어 있어 HTTP 서버를 시작하지 않습니다"
	LogMsgServiceStopping       = "API 서비스 중지 진입: Graceful Shutdown을 시작합니다"
	LogMsgServiceStopped        = "API 서비스 중지 완료: 모든 리소스가 정리되었습니다"
	LogMsgServiceUnexpectedExit = "HTTP 서버가 예기치 않게 종료되었습니다"

	LogMsgHTTPServerStarting      = "HTTP 서버 리스닝을 시작합니다"
	LogMsgHTTPServerStopped       = "HTTP 서버가 정상적으로 종료되었습니다"
	LogMsgHTTPServerFatalError    = "HTTP 서버 실행 중 복구할 수 없는 오류가 발생했습니다"
	LogMsgHTTPServerShutdownError = "HTTP 서버 종료 중 오류가 발생했습니다"
)

// 요청 처리 로그 메시지
const (
	LogMsgHTTP4xxClientError     = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError     = "HTTP 5xx: 서버 내부 오류"
	LogMsgPanicRecovered         = "PANIC RECOVERED: 핸들러 실행 중 패닉이 발생하여 복구했습니다"
	LogMsgRateLimitExceeded      = "요청 차단: 속도 제한(Rate Limit)을 초과하였습니다"
	LogMsgUnsupportedContentType = "지원하지 않는 Content-Type 요청이 거부되었습니다"
	LogMsgHTTPRequest            = "HTTP 요청"

	LogMsgFeedProcessRequested = "피드 처리 요청을 수신했습니다"
	LogMsgRefreshRequested     = "상품 가격 재확인 요청을 수신했습니다"
	LogMsgCacheSweepRequested  = "수동 캐시 정리 요청을 수신했습니다"
	LogMsgCacheClearRequested  = "캐시 전체 삭제 요청을 수신했습니다"
)

// 생성자 필수 의존성 누락 시의 패닉 메시지
const (
	PanicMsgAppConfigRequired       = "AppConfig는 필수입니다"
	PanicMsgFeedProcessorRequired   = "FeedProcessor는 필수입니다"
	PanicMsgCacheMaintainerRequired = "CacheMaintainer는 필수입니다"
)
