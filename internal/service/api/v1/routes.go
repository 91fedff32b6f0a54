// Package v1 /api/v1 경로 하위의 피드, 상품, 캐시 엔드포인트를 등록합니다.
//
// 주요 엔드포인트:
//   - POST   /api/v1/feeds/:feedId/process
//   - GET    /api/v1/feeds/:feedId/metadata
//   - GET    /api/v1/products/:id
//   - GET    /api/v1/merchants/:merchantId/products/:merchantProductId
//   - POST   /api/v1/products/refresh
//   - GET    /api/v1/cache/stats
//   - POST   /api/v1/cache/sweep
//   - DELETE /api/v1/cache
package v1

import (
	"github.com/darkkaiser/feed-server/internal/service/api/middleware"
	"github.com/darkkaiser/feed-server/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
// 요청 본문을 받는 엔드포인트에는 JSON Content-Type 검증이 적용됩니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	g := e.Group("/api/v1")

	requireJSON := middleware.ValidateContentType(echo.MIMEApplicationJSON)

	feeds := g.Group("/feeds")
	feeds.POST("/:feedId/process", h.ProcessFeedHandler, requireJSON)
	feeds.GET("/:feedId/metadata", h.GetFeedMetadataHandler)

	g.POST("/products/refresh", h.RefreshPricesHandler, requireJSON)
	g.GET("/products/:id", h.GetProductHandler)
	g.GET("/merchants/:merchantId/products/:merchantProductId", h.GetProductByMerchantHandler)

	cache := g.Group("/cache")
	cache.GET("/stats", h.CacheStatsHandler)
	cache.POST("/sweep", h.SweepCacheHandler)
	cache.DELETE("", h.ClearCacheHandler)
}
