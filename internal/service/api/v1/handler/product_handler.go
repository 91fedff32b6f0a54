package handler

import (
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	apihandler "github.com/darkkaiser/feed-server/internal/service/api/handler"
	"github.com/darkkaiser/feed-server/internal/service/api/httputil"
	"github.com/darkkaiser/feed-server/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// GetProductHandler godoc
// @Summary 상품 조회
// @Description 상품 ID로 캐시된 표준 상품 레코드를 조회합니다.
// @Tags Product
// @Produce json
// @Param id path string true "상품 ID"
// @Success 200 {object} contract.Product "상품 레코드"
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Router /api/v1/products/{id} [get]
func (h *Handler) GetProductHandler(c echo.Context) error {
	product, err := h.processor.GetProduct(c.Request().Context(), c.Param(constants.ParamProductID))
	if err != nil {
		return err
	}

	return httputil.OK(c, product)
}

// GetProductByMerchantHandler godoc
// @Summary 판매처 상품 번호로 상품 조회
// @Description 판매처 ID와 판매처 상품 번호로 상품 인덱스를 거쳐 상품 레코드를 조회합니다.
// @Tags Product
// @Produce json
// @Param merchantId path string true "판매처 ID"
// @Param merchantProductId path string true "판매처 상품 번호"
// @Success 200 {object} contract.Product "상품 레코드"
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Router /api/v1/merchants/{merchantId}/products/{merchantProductId} [get]
func (h *Handler) GetProductByMerchantHandler(c echo.Context) error {
	product, err := h.processor.GetProductByMerchant(
		c.Request().Context(),
		c.Param(constants.ParamMerchantID),
		c.Param(constants.ParamMerchantProductID),
	)
	if err != nil {
		return err
	}

	return httputil.OK(c, product)
}

// RefreshPricesHandler godoc
// @Summary 상품 가격 재확인
// @Description 지정한 상품들의 가격을 재확인하고 캐시 유효 기간을 연장합니다.
// @Tags Product
// @Accept json
// @Produce json
// @Param request body request.RefreshPricesRequest true "재확인할 상품 ID 목록"
// @Success 200 {object} contract.RefreshResult "재확인 결과"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Router /api/v1/products/refresh [post]
func (h *Handler) RefreshPricesHandler(c echo.Context) error {
	var req request.RefreshPricesRequest
	if err := c.Bind(&req); err != nil {
		return NewErrInvalidBody()
	}
	if err := apihandler.ValidateRequest(&req); err != nil {
		return NewErrValidationFailed(apihandler.FormatValidationError(err))
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"products":  len(req.ProductIDs),
		"remote_ip": c.RealIP(),
	}).Info(constants.LogMsgRefreshRequested)

	result, err := h.processor.RefreshProductPrices(c.Request().Context(), req.ProductIDs, h.priceLookup)
	if err != nil {
		return err
	}

	return httputil.OK(c, result)
}
