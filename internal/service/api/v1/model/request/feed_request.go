// Package request v1 API의 요청 본문 모델을 정의합니다.
package request

import "github.com/darkkaiser/feed-server/internal/service/contract"

// ProcessFeedRequest 피드 처리 요청
type ProcessFeedRequest struct {
	// FeedName 피드 표시 이름
	FeedName string `json:"feed_name" validate:"required,max=200" korean:"피드 이름(feed_name)" example:"AWIN NL Electronics"`

	// SourceKind 원천 피드 종류 (awin, coolblue, slygad)
	SourceKind string `json:"source_kind" validate:"required,oneof=awin coolblue slygad" korean:"피드 종류(source_kind)" example:"awin"`

	// Rows 원천 피드 행 목록입니다. 빈 배열도 유효한 피드로 처리합니다.
	Rows []contract.RawRow `json:"rows" validate:"required" korean:"피드 행 목록(rows)" swaggertype:"array,object"`
}

// RefreshPricesRequest 상품 가격 재확인 요청
type RefreshPricesRequest struct {
	// ProductIDs 재확인할 상품 ID 목록
	ProductIDs []string `json:"product_ids" validate:"required,min=1,max=1000,dive,required" korean:"상품 ID 목록(product_ids)" example:"prod_3f2a9c1b7d4e8a60"`
}
