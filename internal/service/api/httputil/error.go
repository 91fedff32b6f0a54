// Package httputil API 응답 생성과 전역 에러 처리를 위한 HTTP 유틸리티를 제공합니다.
package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	"github.com/darkkaiser/feed-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/feed-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 에러를 표준 ErrorResponse JSON으로 변환합니다. echo.HTTPError는 지정된 상태 코드를 따르고,
// 서비스 계층이 반환한 AppError는 StatusFromError의 규칙으로 상태 코드를 결정합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := resolve(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 추가 응답을 시도하지 않습니다.
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := constants.ErrMsgInternalServer
		switch m := he.Message.(type) {
		case string:
			message = m
		case response.ErrorResponse:
			message = m.Message
		}

		// 라우팅 실패로 인한 404는 한국어 메시지로 통일합니다.
		if he.Code == http.StatusNotFound && he.Message == http.StatusText(http.StatusNotFound) {
			message = constants.ErrMsgNotFound
		}

		return he.Code, message
	}

	code := StatusFromError(err)
	if code >= http.StatusInternalServerError {
		// 서버 내부 오류의 상세 내용은 로그에만 남깁니다.
		return code, constants.ErrMsgInternalServer
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return code, appErr.Message()
	}
	return code, err.Error()
}

// StatusFromError 에러 체인의 가장 안쪽 AppError 분류를 HTTP 상태 코드로 변환합니다.
//
//   - NotFound: 404
//   - InvalidInput: 400
//   - 그 외: 500
func StatusFromError(err error) int {
	switch apperrors.UnderlyingType(err) {
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
