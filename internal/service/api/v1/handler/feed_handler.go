package handler

import (
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	apihandler "github.com/darkkaiser/feed-server/internal/service/api/handler"
	"github.com/darkkaiser/feed-server/internal/service/api/httputil"
	"github.com/darkkaiser/feed-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// ProcessFeedHandler godoc
// @Summary 피드 처리
// @Description 원천 피드 행을 정규화하고 중복을 제거한 뒤 캐시에 저장합니다.
// @Description 행 단위 실패는 응답의 errors에 담기며 요청 전체를 실패시키지 않습니다.
// @Tags Feed
// @Accept json
// @Produce json
// @Param feedId path string true "피드 ID"
// @Param request body request.ProcessFeedRequest true "피드 처리 요청"
// @Success 200 {object} contract.ProcessedFeed "처리 결과"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Router /api/v1/feeds/{feedId}/process [post]
func (h *Handler) ProcessFeedHandler(c echo.Context) error {
	feedID := c.Param(constants.ParamFeedID)

	var req request.ProcessFeedRequest
	if err := c.Bind(&req); err != nil {
		return NewErrInvalidBody()
	}
	if err := apihandler.ValidateRequest(&req); err != nil {
		return NewErrValidationFailed(apihandler.FormatValidationError(err))
	}

	kind, err := contract.ParseSourceKind(req.SourceKind)
	if err != nil {
		return err
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"feed_id":   feedID,
		"feed_name": req.FeedName,
		"source":    kind,
		"rows":      len(req.Rows),
		"remote_ip": c.RealIP(),
	}).Info(constants.LogMsgFeedProcessRequested)

	result, err := h.processor.ProcessFeed(c.Request().Context(), feedID, req.FeedName, kind, req.Rows)
	if err != nil {
		return err
	}

	return httputil.OK(c, result)
}

// GetFeedMetadataHandler godoc
// @Summary 피드 처리 요약 조회
// @Description 마지막 피드 처리의 요약 정보를 반환합니다.
// @Tags Feed
// @Produce json
// @Param feedId path string true "피드 ID"
// @Success 200 {object} contract.FeedMetadata "처리 요약"
// @Failure 404 {object} response.ErrorResponse "처리 정보 없음"
// @Router /api/v1/feeds/{feedId}/metadata [get]
func (h *Handler) GetFeedMetadataHandler(c echo.Context) error {
	metadata, err := h.processor.GetFeedMetadata(c.Request().Context(), c.Param(constants.ParamFeedID))
	if err != nil {
		return err
	}

	return httputil.OK(c, metadata)
}
