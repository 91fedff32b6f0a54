// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 핸들러는 요청을 바인딩하고 검증한 뒤 contract.FeedProcessor와 contract.CacheMaintainer를 호출합니다.
// 서비스 계층이 반환한 에러는 그대로 반환하며, 상태 코드 변환은 전역 에러 핸들러가 담당합니다.
package handler

import (
	"github.com/darkkaiser/feed-server/internal/service/api/constants"
	"github.com/darkkaiser/feed-server/internal/service/contract"
)

// Handler v1 API 요청을 처리하는 핸들러입니다.
type Handler struct {
	processor contract.FeedProcessor

	cache contract.CacheMaintainer

	// priceLookup 가격 재확인 시 사용할 판매처 가격 조회기입니다.
	// nil이면 가격은 유지한 채 레코드의 TTL과 LastPriceCheck만 갱신합니다.
	priceLookup contract.PriceLookup
}

// NewHandler Handler 인스턴스를 생성합니다. priceLookup은 nil일 수 있습니다.
func NewHandler(processor contract.FeedProcessor, cache contract.CacheMaintainer, priceLookup contract.PriceLookup) *Handler {
	if processor == nil {
		panic(constants.PanicMsgFeedProcessorRequired)
	}
	if cache == nil {
		panic(constants.PanicMsgCacheMaintainerRequired)
	}

	return &Handler{
		processor: processor,

		cache: cache,

		priceLookup: priceLookup,
	}
}
