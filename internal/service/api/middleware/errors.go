package middleware

import (
	"fmt"

	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	"github.com/darkkaiser/feed-server/internal/service/api/httputil"
)

var (
	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환하는 HTTP 429 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError("요청이 너무 많습니다. 잠시 후 다시 시도해주세요")

	// ErrUnsupportedMediaType 요청 본문의 Content-Type을 지원하지 않을 때 반환하는 HTTP 415 에러입니다.
	ErrUnsupportedMediaType = httputil.NewUnsupportedMediaTypeError(constants.ErrMsgUnsupportedMediaType)
)

// NewErrPanicRecovered 복구된 패닉 값을 내부 오류로 감쌉니다.
func NewErrPanicRecovered(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "핸들러 실행 중 패닉이 발생했습니다")
	}
	return apperrors.New(apperrors.Internal, fmt.Sprintf("핸들러 실행 중 패닉이 발생했습니다: %v", r))
}
