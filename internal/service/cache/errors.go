package cache

import (
	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
)

var (
	// ErrQuotaExceeded 로컬 저장소에 기록하려는 데이터가 허용 용량(max_bytes)을 넘었을 때 반환됩니다.
	ErrQuotaExceeded = apperrors.New(apperrors.Unavailable, "로컬 캐시 저장 용량을 초과했습니다")

	// ErrInvalidBackend 등록되지 않은 백엔드 종류를 지정했을 때 반환됩니다.
	ErrInvalidBackend = apperrors.New(apperrors.InvalidInput, "지원하지 않는 캐시 백엔드입니다")

	// ErrInvalidKey 비어 있는 캐시 키로 요청했을 때 반환됩니다.
	ErrInvalidKey = apperrors.New(apperrors.InvalidInput, "캐시 키가 비어 있습니다")
)

func newErrMarshalFailed(err error, key string) error {
	return apperrors.Wrapf(err, apperrors.Internal, "캐시 값 직렬화 실패 (key=%s)", key)
}

func newErrUnmarshalFailed(err error, key string) error {
	return apperrors.Wrapf(err, apperrors.ParsingFailed, "캐시 값 역직렬화 실패 (key=%s)", key)
}

func newErrBackendFailed(err error, backend, op string) error {
	return apperrors.Wrapf(err, apperrors.System, "캐시 백엔드 작업 실패 (backend=%s, op=%s)", backend, op)
}
