package contract

import (
	apperrors "github.com/darkkaiser/feed-server/internal/pkg/errors"
)

var (
	// ErrUnknownSourceKind 등록된 정규화기가 없는 피드 종류로 처리를 요청했을 때 반환됩니다.
	// 행 단위로 복구할 수 없는 호출 오류이므로 전체 처리가 중단됩니다.
	ErrUnknownSourceKind = apperrors.New(apperrors.InvalidInput, "알 수 없는 피드 종류입니다")

	// ErrProductNotFound 캐시에 상품 레코드가 없거나 만료되었을 때 반환됩니다.
	ErrProductNotFound = apperrors.New(apperrors.NotFound, "상품을 찾을 수 없습니다")

	// ErrFeedMetadataNotFound 피드 처리 요약 정보가 없거나 만료되었을 때 반환됩니다.
	ErrFeedMetadataNotFound = apperrors.New(apperrors.NotFound, "피드 처리 정보를 찾을 수 없습니다")
)
