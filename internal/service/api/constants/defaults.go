package constants

import "time"

// http.Server 타임아웃 기본값입니다.
// 피드 처리 요청은 본문이 크므로 ReadTimeout을 넉넉하게 둡니다.
const (
	DefaultReadTimeout       = 60 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 120 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
)

const (
	// DefaultRequestTimeout 설정에 요청 타임아웃이 없을 때 적용되는 값입니다.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultBodyLimit 설정에 본문 크기 제한이 없을 때 적용되는 값입니다.
	DefaultBodyLimit = "16M"

	// ShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	ShutdownTimeout = 5 * time.Second

	// SweepTimeout 수동 캐시 정리 요청의 최대 처리 시간
	SweepTimeout = time.Minute
)
