package normalizer

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/darkkaiser/feed-server/internal/service/contract"
	"github.com/iancoleman/strcase"
)

const productIDPrefix = "prod_"

// ProductID "<kind>:<merchantKey>:<merchantProductID>"의 64비트 xxhash를 36진수로 표현한 상품 ID를 반환합니다.
//
// merchantKey는 판매처의 원천 식별자입니다. AWIN은 merchant_id("55"), 단일 판매처 피드는 판매처 ID("coolblue")를 사용합니다.
// 암호학적 해시가 아니므로 악의적인 충돌까지 막지는 않습니다.
func ProductID(kind contract.SourceKind, merchantKey, merchantProductID string) string {
	sum := xxhash.Sum64String(string(kind) + ":" + merchantKey + ":" + merchantProductID)
	return productIDPrefix + strconv.FormatUint(sum, 36)
}

// normalizeKeys 행의 키를 snake_case로 통일합니다 ("productId" -> "product_id").
// 변환 결과가 이미 존재하는 snake_case 키와 겹치면 원래 snake_case 키의 값을 우선합니다.
func normalizeKeys(row contract.RawRow) map[string]any {
	out := make(map[string]any, len(row))

	for k, v := range row {
		snake := strcase.ToSnake(strings.TrimSpace(k))
		if snake == k {
			continue
		}
		out[snake] = v
	}
	for k, v := range row {
		if strcase.ToSnake(strings.TrimSpace(k)) == k {
			out[k] = v
		}
	}

	return out
}
