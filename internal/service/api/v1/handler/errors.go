package handler

import (
	"github.com/darkkaiser/feed-server/internal/service/api/httputil"
)

// NewErrInvalidBody 요청 본문이 올바른 JSON이 아니어서 해석할 수 없을 때의 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError("요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요")
}

// NewErrValidationFailed 요청 값의 유효성 검증에 실패했을 때의 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}
