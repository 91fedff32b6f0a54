package handler

import (
	"context"

	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	"github.com/darkkaiser/feed-server/internal/service/api/httputil"
	"github.com/darkkaiser/feed-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// CacheStatsHandler godoc
// @Summary 캐시 통계 조회
// @Description 캐시 적중/실패/저장/삭제 횟수와 적중률, 저장된 항목 수를 반환합니다.
// @Tags Cache
// @Produce json
// @Success 200 {object} contract.CacheStats "캐시 통계"
// @Router /api/v1/cache/stats [get]
func (h *Handler) CacheStatsHandler(c echo.Context) error {
	return httputil.OK(c, h.cache.Stats())
}

// SweepCacheHandler godoc
// @Summary 만료 캐시 정리
// @Description 모든 백엔드에서 만료된 항목을 즉시 제거합니다.
// @Tags Cache
// @Produce json
// @Success 200 {object} response.SweepResponse "정리 결과"
// @Failure 500 {object} response.ErrorResponse "정리 실패"
// @Router /api/v1/cache/sweep [post]
func (h *Handler) SweepCacheHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"remote_ip": c.RealIP(),
	}).Info(constants.LogMsgCacheSweepRequested)

	ctx, cancel := context.WithTimeout(c.Request().Context(), constants.SweepTimeout)
	defer cancel()

	removed, err := h.cache.Sweep(ctx)
	if err != nil {
		return err
	}

	return httputil.OK(c, response.SweepResponse{Removed: removed})
}

// ClearCacheHandler godoc
// @Summary 캐시 전체 삭제
// @Description 상품 레코드, 상품 인덱스, 피드 처리 요약을 모두 삭제합니다.
// @Tags Cache
// @Produce json
// @Success 200 {object} response.SuccessResponse "삭제 완료"
// @Failure 500 {object} response.ErrorResponse "삭제 실패"
// @Router /api/v1/cache [delete]
func (h *Handler) ClearCacheHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"remote_ip": c.RealIP(),
	}).Warn(constants.LogMsgCacheClearRequested)

	if err := h.processor.ClearCache(c.Request().Context()); err != nil {
		return err
	}

	return httputil.Success(c)
}
