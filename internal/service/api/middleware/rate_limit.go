package middleware

import (
	"fmt"
	"sync"

	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// maxIPRateLimiters 메모리에 유지하는 IP별 Limiter의 최대 개수입니다.
	// 한도에 도달하면 임의의 항목 하나를 제거한 뒤 새 Limiter를 등록합니다.
	maxIPRateLimiters = 10000

	retryAfterHeader  = "Retry-After"
	retryAfterSeconds = "1"
)

// ipRateLimiter IP 주소별 Token Bucket Limiter를 관리합니다.
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	maxIPs   int
}

func newIPRateLimiter(perSecond float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		maxIPs:   maxIPRateLimiters,
	}
}

// getLimiter ip의 Limiter를 반환합니다. 없으면 새로 생성합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// 다른 고루틴이 먼저 생성했을 수 있습니다.
	if limiter, exists = i.limiters[ip]; exists {
		return limiter
	}

	if len(i.limiters) >= i.maxIPs {
		// Go 맵의 순회 순서는 무작위이므로 첫 항목을 제거합니다.
		for oldIP := range i.limiters {
			delete(i.limiters, oldIP)
			break
		}
	}

	limiter = rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimit IP 기반 요청 속도 제한 미들웨어를 반환합니다.
//
// IP마다 초당 perSecond개의 토큰이 채워지고 최대 burst개까지 쌓이는 Token Bucket을 사용합니다.
// 토큰이 없으면 429 Too Many Requests와 Retry-After 헤더를 반환합니다.
//
// 저장소는 메모리 기반이므로 서버를 재시작하면 초기화되고, 여러 인스턴스 사이에서 공유되지 않습니다.
//
// Panics:
//   - perSecond 또는 burst가 0 이하인 경우
func RateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		panic(fmt.Sprintf("RateLimit: perSecond는 양수여야 합니다 (현재값: %v)", perSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf("RateLimit: burst는 양수여야 합니다 (현재값: %d)", burst))
	}

	limiter := newIPRateLimiter(perSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(retryAfterHeader, retryAfterSeconds)

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
